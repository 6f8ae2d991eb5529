package models

import "gorm.io/gorm"

// InvitationTypeBoard is the only invitation type currently supported.
const InvitationTypeBoard = "BOARD_INVITATION"

// Board invitation statuses. Creation always starts at "pending"; the
// accept/reject transitions are handled by the board workflow.
const (
	BoardInvitationPending  = "pending"
	BoardInvitationAccepted = "accepted"
	BoardInvitationRejected = "rejected"
)

// BoardInvitation is the board-specific part of an Invitation.
type BoardInvitation struct {
	BoardID string `json:"boardId" gorm:"type:varchar(36)" validate:"required"`
	Status  string `json:"status" gorm:"type:varchar(20)" validate:"required,oneof=pending accepted rejected"`
}

// Invitation links an inviter, an invitee and the board they are invited to.
// The store holds only the ids; responses are denormalized on the way out.
type Invitation struct {
	ID              string          `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	InviterID       string          `json:"inviterId" gorm:"type:varchar(36)" validate:"required"`
	InviteeID       string          `json:"inviteeId" gorm:"type:varchar(36)" validate:"required"`
	Type            string          `json:"type" gorm:"type:varchar(30)" validate:"required"`
	BoardInvitation BoardInvitation `json:"boardInvitation" gorm:"embedded;embeddedPrefix:board_"`
	gorm.Model
}

// InvitationDetails is the response shape for a freshly created invitation:
// the stored record plus the full board and the public projections of both
// users involved.
type InvitationDetails struct {
	Invitation
	Board   Board      `json:"board"`
	Inviter PublicUser `json:"inviter"`
	Invitee PublicUser `json:"invitee"`
}
