package models

import "github.com/uptrace/bun"

// GptLog is an append-only record of one proxied completion call:
// the code/prompt a user submitted and the reply the API returned.
type GptLog struct {
	bun.BaseModel `bun:"table:gpt_logs,alias:gl"`

	ID     int64  `bun:"id,pk,autoincrement" json:"id"`
	UserID int64  `bun:"ur_id,notnull" json:"ur_id"`
	Code   string `bun:"code,notnull" json:"code"`
	Output string `bun:"output,notnull" json:"output"`
}
