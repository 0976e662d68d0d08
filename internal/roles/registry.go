// Package roles holds the role/permission registry used to annotate user
// profiles and authorize administrative routes.
package roles

import (
	"sort"
	"strings"
)

const (
	Admin      = "Admin"
	SuperAdmin = "super admin"
	Trainer    = "Trainer"
	Member     = "Member"
)

// Permission names referenced by route guards.
const (
	PermManageUsers         = "Manage Users"
	PermManageRoles         = "Manage Roles"
	PermManageProducts      = "Manage Products"
	PermManageOrders        = "Manage Orders"
	PermManageCourses       = "Manage Courses"
	PermCreateCourseContent = "Create Course Content"
	PermBasicAccess         = "Basic Access"
)

type Descriptor struct {
	Name         string   `json:"roleName" mapstructure:"name"`
	Description  string   `json:"description" mapstructure:"description"`
	ControlLevel int      `json:"controlLevel" mapstructure:"control_level"`
	Permissions  []string `json:"permissions" mapstructure:"permissions"`
	BadgeColor   string   `json:"badgeColor" mapstructure:"badge_color"`
}

type UserProfile struct {
	UserID              string       `json:"userId"`
	Email               string       `json:"email"`
	Roles               []string     `json:"roles"`
	RoleDetails         []Descriptor `json:"roleDetails"`
	HighestControlLevel int          `json:"highestControlLevel"`
}

func DefaultDefinitions() []Descriptor {
	return []Descriptor{
		{
			Name:         Admin,
			Description:  "Full system administrator with complete access",
			ControlLevel: 100,
			BadgeColor:   "danger",
			Permissions: []string{
				PermManageUsers, PermManageRoles, PermManageProducts, PermManageOrders,
				PermManageCourses, "View Reports", "System Configuration", "Delete Content",
			},
		},
		{
			Name:         SuperAdmin,
			Description:  "Super administrator with elevated privileges",
			ControlLevel: 100,
			BadgeColor:   "dark",
			Permissions: []string{
				PermManageUsers, PermManageRoles, PermManageProducts, PermManageOrders,
				PermManageCourses, "View Reports", "System Configuration", "Delete Content",
				"Access Audit Logs",
			},
		},
		{
			Name:         Trainer,
			Description:  "Course trainer with content management access",
			ControlLevel: 70,
			BadgeColor:   "primary",
			Permissions: []string{
				"Manage Own Courses", "View Enrolled Students", PermCreateCourseContent,
				"Grade Assignments", "View Basic Reports",
			},
		},
		{
			Name:         Member,
			Description:  "Registered member with basic platform access",
			ControlLevel: 30,
			BadgeColor:   "success",
			Permissions: []string{
				"View Products", "Place Orders", "View Own Orders", "Enroll in Courses", "Update Profile",
			},
		},
	}
}

// Registry is built once at startup and is read-only afterwards, so it is
// safe to share between goroutines.
type Registry struct {
	defs map[string]Descriptor
}

func NewRegistry(defs []Descriptor) *Registry {
	m := make(map[string]Descriptor, len(defs))
	for _, d := range defs {
		name := strings.TrimSpace(d.Name)
		if name == "" {
			continue
		}
		d.Name = name
		if d.BadgeColor == "" {
			d.BadgeColor = "secondary"
		}
		d.Permissions = append([]string(nil), d.Permissions...)
		m[name] = d
	}
	return &Registry{defs: m}
}

// Lookup returns the descriptor for name. Unknown roles get a low-privilege
// "Custom role" descriptor instead of an error.
func (r *Registry) Lookup(name string) Descriptor {
	if d, ok := r.defs[name]; ok {
		d.Permissions = append([]string(nil), d.Permissions...)
		return d
	}
	return Descriptor{
		Name:         name,
		Description:  "Custom role",
		ControlLevel: 10,
		Permissions:  []string{PermBasicAccess},
		BadgeColor:   "secondary",
	}
}

func (r *Registry) Defined(name string) bool {
	_, ok := r.defs[name]
	return ok
}

func (r *Registry) ControlLevel(name string) int {
	return r.Lookup(name).ControlLevel
}

func (r *Registry) Permissions(name string) []string {
	return r.Lookup(name).Permissions
}

// All lists the configured roles, highest control level first.
func (r *Registry) All() []Descriptor {
	out := make([]Descriptor, 0, len(r.defs))
	for name := range r.defs {
		out = append(out, r.Lookup(name))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ControlLevel != out[j].ControlLevel {
			return out[i].ControlLevel > out[j].ControlLevel
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// EffectiveLevel is the highest control level over the given roles, 0 if none.
func (r *Registry) EffectiveLevel(roleNames []string) int {
	level := 0
	for _, name := range roleNames {
		if l := r.ControlLevel(name); l > level {
			level = l
		}
	}
	return level
}

// Grants reports whether any of the roles carries the permission.
func (r *Registry) Grants(roleNames []string, permission string) bool {
	for _, name := range roleNames {
		for _, p := range r.Lookup(name).Permissions {
			if strings.EqualFold(p, permission) {
				return true
			}
		}
	}
	return false
}

func (r *Registry) Profile(userID, email string, roleNames []string) UserProfile {
	details := make([]Descriptor, 0, len(roleNames))
	for _, name := range roleNames {
		details = append(details, r.Lookup(name))
	}
	return UserProfile{
		UserID:              userID,
		Email:               email,
		Roles:               append([]string{}, roleNames...),
		RoleDetails:         details,
		HighestControlLevel: r.EffectiveLevel(roleNames),
	}
}
