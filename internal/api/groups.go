package api

import (
	"context"

	"github.com/petcarehq/petcare-cli/internal/models"
)

// CreateGroup creates a sharing group with the current user as creator.
func (a *API) CreateGroup(ctx context.Context, name string) (*models.Group, error) {
	env, err := a.client.Post(ctx, "/groups/create", map[string]string{"name": name})
	if err != nil {
		return nil, err
	}
	return decode[models.Group](env)
}

// Invite creates an invitation for the given email to join the group.
func (a *API) Invite(ctx context.Context, groupID, email string) (*models.Invitation, error) {
	env, err := a.client.Post(ctx, "/groups/"+groupID+"/invite", map[string]string{"email": email})
	if err != nil {
		return nil, err
	}
	return decode[models.Invitation](env)
}

// JoinGroup redeems an invite code.
func (a *API) JoinGroup(ctx context.Context, inviteCode string) (*models.Group, error) {
	env, err := a.client.Post(ctx, "/groups/join", map[string]string{"invite_code": inviteCode})
	if err != nil {
		return nil, err
	}
	return decode[models.Group](env)
}

// MyGroups lists the groups the user belongs to.
func (a *API) MyGroups(ctx context.Context) ([]models.Group, error) {
	env, err := a.client.Get(ctx, "/groups/my_groups", nil)
	if err != nil {
		return nil, err
	}
	return decodeList[models.Group](env)
}

// GroupMembers lists a group's members with user details.
func (a *API) GroupMembers(ctx context.Context, groupID string) ([]models.GroupMember, error) {
	env, err := a.client.Get(ctx, "/groups/"+groupID+"/members", nil)
	if err != nil {
		return nil, err
	}
	return decodeList[models.GroupMember](env)
}

// UpdateMemberRole changes a member's role within the group.
func (a *API) UpdateMemberRole(ctx context.Context, groupID, userID, role string) error {
	_, err := a.client.Post(ctx, "/groups/"+groupID+"/members/update_role",
		map[string]string{"user_id": userID, "role": role})
	return err
}

// RemoveMember removes a member from the group.
func (a *API) RemoveMember(ctx context.Context, groupID, userID string) error {
	_, err := a.client.Post(ctx, "/groups/"+groupID+"/members/remove",
		map[string]string{"user_id": userID})
	return err
}

// GroupPets lists the pets assigned to a group.
func (a *API) GroupPets(ctx context.Context, groupID string) ([]models.Pet, error) {
	env, err := a.client.Get(ctx, "/groups/"+groupID+"/pets", nil)
	if err != nil {
		return nil, err
	}
	return decodeList[models.Pet](env)
}
