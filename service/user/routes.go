package user

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fatahealth/clinic-server/cmd/models"
	"github.com/fatahealth/clinic-server/cmd/utils"
	"github.com/golang-jwt/jwt/v4"
	"github.com/gorilla/mux"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Handler struct {
	db *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/login", h.handleLogin).Methods("POST")
	router.HandleFunc("/me", utils.AuthMiddleware(h.GetMe)).Methods("GET")

	router.HandleFunc("/users", utils.AuthMiddleware(h.GetUsers)).Methods("GET")
	router.HandleFunc("/users", utils.AuthMiddleware(h.CreateUser)).Methods("POST")
	router.HandleFunc("/users/{id}", utils.AuthMiddleware(h.DeleteUser)).Methods("DELETE")
}

// requireAdmin re-reads the caller's role from the database. Role claims are
// never trusted from the client side.
func (h *Handler) requireAdmin(r *http.Request) (*models.User, error) {
	userID, err := utils.GetUserIDFromContext(r)
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		return nil, errors.New("user not found")
	}
	if user.Role != models.RoleAdmin {
		return nil, errors.New("admin role required")
	}
	return &user, nil
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var loginRequest struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&loginRequest); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	var user models.User
	if err := h.db.Where("email = ?", loginRequest.Email).First(&user).Error; err != nil {
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(loginRequest.Password)); err != nil {
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	accessToken, err := generateJWT(user.ID, 24*time.Hour)
	if err != nil {
		http.Error(w, "Error generating access token", http.StatusInternalServerError)
		return
	}

	response := map[string]interface{}{
		"message":      "Login successful",
		"access_token": accessToken,
		"user_id":      user.ID,
		"role":         user.Role,
	}

	// Non-admin users must carry exactly one matching profile; a missing
	// profile is terminal for that login, not retryable
	switch user.Role {
	case models.RoleStaff:
		var staff models.Staff
		if err := h.db.Where("user_id = ?", user.ID).First(&staff).Error; err != nil {
			http.Error(w, "Staff profile not found", http.StatusNotFound)
			return
		}
		response["profile"] = staff
	case models.RoleDoctor:
		var doctor models.Doctor
		if err := h.db.Where("user_id = ?", user.ID).First(&doctor).Error; err != nil {
			http.Error(w, "Doctor profile not found", http.StatusNotFound)
			return
		}
		response["profile"] = doctor
	}

	log.Printf("User %d (%s) logged in", user.ID, user.Role)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// GetMe returns the caller's identity and profile snapshot.
func (h *Handler) GetMe(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.GetUserIDFromContext(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var user models.User
	if err := h.db.Preload("Staff").Preload("Doctor").First(&user, userID).Error; err != nil {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(user)
}

// GetUsers lists users joined with their staff or doctor profile. Admin only.
func (h *Handler) GetUsers(w http.ResponseWriter, r *http.Request) {
	if _, err := h.requireAdmin(r); err != nil {
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	}

	var users []models.User
	if err := h.db.Preload("Staff").Preload("Doctor").Find(&users).Error; err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"users": users,
		"total": len(users),
	})
}

// CreateUser creates a user and the role-matched profile in one transaction.
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	if _, err := h.requireAdmin(r); err != nil {
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	}

	var createRequest struct {
		Email          string `json:"email"`
		Password       string `json:"password"`
		Role           string `json:"role"`
		FullName       string `json:"full_name"`
		Phone          string `json:"phone"`
		Address        string `json:"address"`
		Position       string `json:"position"`
		Shift          string `json:"shift"`
		Specialization string `json:"specialization"`
	}
	if err := json.NewDecoder(r.Body).Decode(&createRequest); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if createRequest.Email == "" || createRequest.Password == "" || createRequest.FullName == "" {
		http.Error(w, "Missing required fields", http.StatusBadRequest)
		return
	}
	if createRequest.Role != models.RoleStaff && createRequest.Role != models.RoleDoctor {
		http.Error(w, "Role must be staff or doctor", http.StatusBadRequest)
		return
	}

	var existingUser models.User
	if result := h.db.Where("email = ?", createRequest.Email).First(&existingUser); !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		if result.Error != nil {
			http.Error(w, "Database error", http.StatusInternalServerError)
			return
		}
		http.Error(w, "Email is already in use", http.StatusConflict)
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(createRequest.Password), bcrypt.DefaultCost)
	if err != nil {
		http.Error(w, "Error hashing password", http.StatusInternalServerError)
		return
	}

	user := models.User{
		Email:        createRequest.Email,
		PasswordHash: string(passwordHash),
		Role:         createRequest.Role,
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		switch createRequest.Role {
		case models.RoleStaff:
			staff := models.Staff{
				UserID:   user.ID,
				FullName: createRequest.FullName,
				Phone:    createRequest.Phone,
				Email:    createRequest.Email,
				Address:  createRequest.Address,
				Position: createRequest.Position,
				Shift:    createRequest.Shift,
			}
			return tx.Create(&staff).Error
		case models.RoleDoctor:
			doctor := models.Doctor{
				UserID:         user.ID,
				FullName:       createRequest.FullName,
				Phone:          createRequest.Phone,
				Email:          createRequest.Email,
				Address:        createRequest.Address,
				Specialization: createRequest.Specialization,
			}
			return tx.Create(&doctor).Error
		}
		return nil
	})
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			http.Error(w, "Email is already in use", http.StatusConflict)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "User created successfully",
		"user_id": user.ID,
	})
}

// DeleteUser removes a user and whichever profile rows reference it.
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	admin, err := h.requireAdmin(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	}

	vars := mux.Vars(r)
	userID, err := strconv.ParseUint(vars["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusBadRequest)
		return
	}
	if admin.ID == uint(userID) {
		http.Error(w, "Admins cannot delete themselves", http.StatusBadRequest)
		return
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.Staff{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Doctor{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.User{}, userID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "User not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"message": "User deleted successfully",
	})
}

func generateJWT(userID uint, ttl time.Duration) (string, error) {
	claims := &jwt.RegisteredClaims{
		Subject:   fmt.Sprint(userID),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("SECRET_KEY")))
}
