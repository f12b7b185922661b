package auth

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/CircuitOps/CM-Backend/internal/db"
	"github.com/CircuitOps/CM-Backend/internal/utils"
	"golang.org/x/crypto/bcrypt"
)

func RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var user User

	err := json.NewDecoder(r.Body).Decode(&user)
	if err != nil {
		http.Error(w, "Invalid Request Format", http.StatusBadRequest)
		return
	}

	if user.Username == "" || user.Password == "" {
		http.Error(w, "Username and password are required", http.StatusBadRequest)
		return
	}

	var existing User
	err = db.DB.First(&existing, "username = ?", user.Username).Error
	if err == nil {
		http.Error(w, "Username already taken", http.StatusConflict)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		http.Error(w, "Server error hashing password", http.StatusInternalServerError)
		return
	}
	user.HashedPassword = string(hashed)
	user.UserID = utils.GenerateUUID()
	user.Password = ""

	// New accounts never self-assign a role.
	user.Role = "user"

	if err := db.DB.Create(&user).Error; err != nil {
		http.Error(w, "Failed to register user", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{
		"user_id":  user.UserID,
		"username": user.Username,
	})
}

func LoginHandler(w http.ResponseWriter, r *http.Request) {
	var user User
	var session Session
	var existing Session

	err := json.NewDecoder(r.Body).Decode(&user)
	if err != nil {
		http.Error(w, "Invalid Data", http.StatusBadRequest)
		return
	}

	password := user.Password
	err = db.DB.First(&user, "username = ?", user.Username).Error
	if err != nil {
		http.Error(w, "Invalid Credentials", http.StatusUnauthorized)
		return
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password))
	if err != nil {
		http.Error(w, "Invalid Credentials", http.StatusUnauthorized)
		return
	}

	sessionID := utils.GenerateUUID()
	http.SetCookie(w, &http.Cookie{
		Name:     "session_id",
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	// One session per user: refresh it if it exists.
	db.DB.Where("user_id = ?", user.UserID).First(&existing)
	if existing.UserID != "" {
		db.DB.Model(&existing).Updates(Session{
			SessionID: sessionID,
			ExpiresAt: time.Now().Add(6 * time.Hour),
		})
	} else {
		session.SessionID = sessionID
		session.UserID = user.UserID
		session.ExpiresAt = time.Now().Add(6 * time.Hour)
		db.DB.Create(&session)
	}

	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "Login successful")
}

func LogoutHandler(w http.ResponseWriter, r *http.Request) {
	var session Session

	cookie, err := r.Cookie("session_id")
	if err != nil {
		http.Error(w, "Couldn't find cookie", http.StatusUnauthorized)
		return
	}

	err = db.DB.First(&session, "session_id = ?", cookie.Value).Error
	if err != nil {
		http.Error(w, "Couldn't find session", http.StatusUnauthorized)
		return
	}

	db.DB.Delete(&session)

	http.SetCookie(w, &http.Cookie{
		Name:   "session_id",
		Value:  "",
		MaxAge: 0,
		Path:   "/",
	})

	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "Logout successful")
}

type MeResponse struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

func MeHandler(w http.ResponseWriter, r *http.Request) {
	var user User

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Failed converting ID to string", http.StatusInternalServerError)
		return
	}

	err := db.DB.First(&user, "user_id = ?", userID).Error
	if err != nil {
		http.Error(w, "Couldn't find user", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(MeResponse{
		UserID:   userID,
		Username: user.Username,
		Role:     user.Role,
	})
}
