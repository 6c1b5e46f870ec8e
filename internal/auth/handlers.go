package auth

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/ObraVista/OV-Backend/internal/db"
	"github.com/ObraVista/OV-Backend/internal/utils"
	"golang.org/x/crypto/bcrypt"
)

var validRoles = map[string]struct{}{
	"admin":      {},
	"contractor": {},
	"client":     {},
}

// sessionCookie builds the session cookie. Secure + SameSite=None in deployed
// environments (PORT set by the platform), Lax over plain HTTP in local dev.
func sessionCookie(value string) *http.Cookie {
	deployed := os.Getenv("PORT") != ""
	c := &http.Cookie{
		Name:     "session_id",
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   false,
	}
	if deployed {
		c.SameSite = http.SameSiteNoneMode
		c.Secure = true
	}
	return c
}

func RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var user User

	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		http.Error(w, "Invalid Request Format", http.StatusBadRequest)
		return
	}

	if user.Username == "" || user.Password == "" {
		http.Error(w, "Username and password are required", http.StatusBadRequest)
		return
	}

	if user.Role == "" {
		user.Role = "client"
	}
	if _, ok := validRoles[user.Role]; !ok {
		http.Error(w, "Invalid role", http.StatusBadRequest)
		return
	}

	var existing User
	err := db.DB.First(&existing, "username = ?", user.Username).Error
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

	if err := db.DB.Create(&user).Error; err != nil {
		http.Error(w, "Failed to register user", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{
		"user_id":  user.UserID,
		"username": user.Username,
		"role":     user.Role,
	})
}

func LoginHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid Data", http.StatusBadRequest)
		return
	}

	var user User
	if err := db.DB.First(&user, "username = ?", input.Username).Error; err != nil {
		http.Error(w, "Invalid Credentials", http.StatusUnauthorized)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(input.Password)); err != nil {
		http.Error(w, "Invalid Credentials", http.StatusUnauthorized)
		return
	}

	sessionID := utils.GenerateUUID()
	http.SetCookie(w, sessionCookie(sessionID))

	// One session row per user; rotate the ID if a session already exists.
	var existing Session
	db.DB.Where("user_id = ?", user.UserID).First(&existing)
	if existing.UserID != "" {
		db.DB.Model(&existing).Updates(Session{
			SessionID: sessionID,
			ExpiresAt: time.Now().Add(6 * time.Hour),
		})
	} else {
		db.DB.Create(&Session{
			SessionID: sessionID,
			UserID:    user.UserID,
			ExpiresAt: time.Now().Add(6 * time.Hour),
		})
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

	deleted := sessionCookie("")
	deleted.MaxAge = -1
	http.SetCookie(w, deleted)

	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "Logout successful")
}

type MeResponse struct {
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	Role        string `json:"role"`
	CompanyName string `json:"company_name"`
}

func MeHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Failed converting ID to string", http.StatusInternalServerError)
		return
	}

	var user User
	if err := db.DB.First(&user, "user_id = ?", userID).Error; err != nil {
		http.Error(w, "Couldn't find user", http.StatusNotFound)
		return
	}

	response := MeResponse{
		UserID:      userID,
		Username:    user.Username,
		Role:        user.Role,
		CompanyName: user.CompanyName,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func UpdatePasswordHandler(w http.ResponseWriter, r *http.Request) {
	type UpdatePassword struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var user User
	if err := db.DB.First(&user, "user_id = ?", userID).Error; err != nil {
		http.Error(w, "Couldn't find user", http.StatusUnauthorized)
		return
	}

	var updatepass UpdatePassword
	if err := json.NewDecoder(r.Body).Decode(&updatepass); err != nil {
		http.Error(w, "Current and new password are required", http.StatusBadRequest)
		return
	}
	if updatepass.NewPassword == "" {
		http.Error(w, "Current and new password are required", http.StatusBadRequest)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(updatepass.CurrentPassword)); err != nil {
		http.Error(w, "Invalid current password", http.StatusUnauthorized)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(updatepass.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		http.Error(w, "Server error hashing password", http.StatusInternalServerError)
		return
	}

	db.DB.Model(&user).Update("hashed_password", string(hashed))

	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "Password updated")
}
