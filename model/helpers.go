package model

import (
	"github.com/flant/identity-core/uuid"
)

func NewResourceVersion() string {
	return uuid.New()
}
