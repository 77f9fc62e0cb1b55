package access

import (
	"sort"

	"github.com/emilianohg/taskdesk/internal/models"
)

// GroupMembers is a group with its users, as loaded from the identity store.
type GroupMembers struct {
	Group   models.Group
	Members []models.Member
}

// TeamChoices groups candidate team members by role group. Groups whose role
// is hidden from the selector and groups without members are left out;
// members are ordered by username.
func TeamChoices(groups []GroupMembers) []models.GroupChoices {
	choices := []models.GroupChoices{}
	for _, g := range groups {
		if rules[models.RoleForGroup(g.Group.Name)].hiddenFromTeamSelector {
			continue
		}
		if len(g.Members) == 0 {
			continue
		}
		members := append([]models.Member(nil), g.Members...)
		sort.SliceStable(members, func(i, j int) bool {
			return members[i].Username < members[j].Username
		})
		choices = append(choices, models.GroupChoices{Group: g.Group.Name, Members: members})
	}
	return choices
}
