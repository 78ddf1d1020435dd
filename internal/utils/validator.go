package utils

import (
	"sync"

	"github.com/go-playground/validator/v10"
)

// Validator wraps the shared go-playground validator instance.
type Validator struct {
	Validate *validator.Validate
}

var instance *Validator
var once sync.Once

func GetValidator() *Validator {
	once.Do(func() {
		instance = &Validator{
			Validate: validator.New(validator.WithRequiredStructEnabled()),
		}
	})

	return instance
}
