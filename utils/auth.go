package utils

import (
	"github.com/bwmarrin/discordgo"
)

// Permission levels
const (
	OwnerPermission = "owner"
	AdminPermission = "admin"
	UserPermission  = "user"
)

// contains checks if a slice of strings contains an element.
func contains(slice []string, item string) bool {
	for _, a := range slice {
		if a == item {
			return true
		}
	}
	return false
}

// CheckPermission returns the highest permission level of the invoking
// member: owner (configured bot owner), admin (guild administrator bit) or
// plain user.
func CheckPermission(member *discordgo.Member, ownerUserIDs []string) string {
	if member == nil || member.User == nil {
		return UserPermission
	}
	if contains(ownerUserIDs, member.User.ID) {
		return OwnerPermission
	}
	if member.Permissions&discordgo.PermissionAdministrator != 0 {
		return AdminPermission
	}
	return UserPermission
}
