package navigation

import "vcarpool/models"

var common = []models.NavLink{
	{Href: "/dashboard", Text: "Dashboard"},
	{Href: "/dashboard/profile", Text: "Profile"},
}

var byRole = map[models.UserRole][]models.NavLink{
	models.RoleAdmin: {
		{Href: "/dashboard/admin/users", Text: "Users"},
		{Href: "/dashboard/admin/templates", Text: "Schedule Templates"},
		{Href: "/dashboard/admin/schedule", Text: "Generate Schedule"},
		{Href: "/dashboard/admin/statistics", Text: "Statistics"},
	},
	models.RoleParent: {
		{Href: "/dashboard/parent/preferences", Text: "My Preferences"},
		{Href: "/dashboard/parent/rides", Text: "My Rides"},
		{Href: "/dashboard/parent/swaps", Text: "Swap Requests"},
	},
	models.RoleStudent: {
		{Href: "/dashboard/student/rides", Text: "My Rides"},
	},
}

// LinksFor returns the navigation bar for a role. Unknown roles only get the common links.
func LinksFor(role models.UserRole) []models.NavLink {
	extra := byRole[role]
	out := make([]models.NavLink, 0, len(common)+len(extra))
	out = append(out, common...)
	return append(out, extra...)
}
