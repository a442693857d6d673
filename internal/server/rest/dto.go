package rest

import (
	"time"

	"github.com/dmitrijs2005/rentals/internal/server/models"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type userResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

type rentalResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Surface     int       `json:"surface"`
	Price       float64   `json:"price"`
	Picture     string    `json:"picture"`
	Description string    `json:"description"`
	OwnerID     int64     `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toRentalResponse(r *models.Rental) rentalResponse {
	return rentalResponse{
		ID:          r.ID,
		Name:        r.Name,
		Surface:     r.Surface,
		Price:       r.Price,
		Picture:     r.Picture,
		Description: r.Description,
		OwnerID:     r.OwnerID,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

type rentalsResponse struct {
	Rentals []rentalResponse `json:"rentals"`
}

type messageRequest struct {
	Message  string `json:"message"`
	UserID   int64  `json:"user_id"`
	RentalID int64  `json:"rental_id"`
}

type routeDoc struct {
	Method string `json:"method"`
	Path   string `json:"path"`
	Public bool   `json:"public"`
}
