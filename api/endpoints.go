package api

import "fmt"

// API endpoint paths
// All paths the client touches are defined here to ensure consistency and prevent typos
const (
	EndpointLogin      = "/auth/login"
	EndpointAdminCamps = "/admin/camps"
)

func adminCampPath(campID string) string {
	return fmt.Sprintf("%s/%s", EndpointAdminCamps, campID)
}

func campPath(campSlug, suffix string) string {
	return fmt.Sprintf("/camps/%s%s", campSlug, suffix)
}
