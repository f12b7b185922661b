package auth

import (
	"github.com/CircuitOps/CM-Backend/internal/db"
	"github.com/CircuitOps/CM-Backend/internal/utils"
)

type SessionInfo struct{}

func (si SessionInfo) FindSessionByID(id string) (utils.SessionData, error) {
	var session Session

	err := db.DB.First(&session, "session_id = ?", id).Error
	if err != nil {
		return utils.SessionData{}, err
	}

	var user User
	if err := db.DB.First(&user, "user_id = ?", session.UserID).Error; err != nil {
		return utils.SessionData{}, err
	}

	return utils.SessionData{
		UserID:    session.UserID,
		Role:      user.Role,
		ExpiresAt: session.ExpiresAt,
	}, nil
}
