package models

import "github.com/uptrace/bun"

// User is an API user with a bcrypt-hashed password and a remaining
// analysis-token balance. Admin users are exempt from token debits.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID       int64  `bun:"id,pk,autoincrement" json:"id"`
	Name     string `bun:"name,notnull,unique" json:"name"`
	Password string `bun:"password,notnull" json:"-"`
	Token    int64  `bun:"token,notnull,default:0" json:"token"`
	IsAdmin  bool   `bun:"is_admin,notnull,default:false" json:"is_admin"`
}
