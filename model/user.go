// model/user.go
package model

import "time"

type Role string

const (
	RoleAdmin      Role = "ADMIN"
	RoleOwner      Role = "OWNER"
	RoleAdvertiser Role = "ADVERTISER"
)

type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	GovIDType    string    `json:"gov_id_type"`
	GovIDNo      string    `json:"gov_id_no"`
	Role         Role      `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// RegisterReq represents user registration payload
// swagger:model RegisterReq
type RegisterReq struct {
	Name          string `json:"name" validate:"required"`
	Email         string `json:"email" validate:"required,email"`
	Phone         string `json:"phone" validate:"required,min=10,max=15"`
	GovIDType     string `json:"gov_id_type" validate:"required,oneof=AADHAR PAN PASSPORT"`
	GovIDNo       string `json:"gov_id_no" validate:"required"`
	RegisteringAs string `json:"registering_as" validate:"required,oneof=OWNER ADVERTISER"`
	Password      string `json:"password" validate:"required,min=6"`
}

// LoginReq represents login payload
// swagger:model LoginReq
type LoginReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	LoginAs  string `json:"login_as" validate:"required,oneof=ADMIN OWNER ADVERTISER"`
}
