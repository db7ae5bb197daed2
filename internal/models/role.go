package models

// Role gates which workflow pages a staff member sees. The selected role
// persists across sessions.
type Role string

const (
	RoleCampusManager Role = "campus_manager"
	RoleArtDirector   Role = "art_director"
	RoleOpsManager    Role = "ops_manager"
)

// Page names one workflow page of the client.
type Page string

const (
	PageScout     Page = "scout"
	PageDesigner  Page = "designer"
	PageLogistics Page = "logistics"
)

type RoleConfig struct {
	Name         string
	Icon         string
	AllowedPages []Page
	DefaultPage  Page
}

var roleConfigs = map[Role]RoleConfig{
	RoleCampusManager: {
		Name:         "Campus Manager",
		Icon:         "🏫",
		AllowedPages: []Page{PageScout},
		DefaultPage:  PageScout,
	},
	RoleArtDirector: {
		Name:         "Art Director",
		Icon:         "🎨",
		AllowedPages: []Page{PageDesigner},
		DefaultPage:  PageDesigner,
	},
	RoleOpsManager: {
		Name:         "Operational Manager",
		Icon:         "📦",
		AllowedPages: []Page{PageLogistics},
		DefaultPage:  PageLogistics,
	},
}

// Config returns the role's page table. The bool is false for unknown
// roles, including stale values read back from storage.
func (r Role) Config() (RoleConfig, bool) {
	c, ok := roleConfigs[r]
	return c, ok
}

func (r Role) Valid() bool {
	_, ok := roleConfigs[r]
	return ok
}

// Allowed reports whether the role may open the page.
func (r Role) Allowed(p Page) bool {
	c, ok := roleConfigs[r]
	if !ok {
		return false
	}
	for _, allowed := range c.AllowedPages {
		if allowed == p {
			return true
		}
	}
	return false
}

// Roles lists the selectable roles in display order.
func Roles() []Role {
	return []Role{RoleCampusManager, RoleArtDirector, RoleOpsManager}
}
