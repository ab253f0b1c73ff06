package handler

import (
	"fmt"

	"github.com/gatherhub/gatherhub/pkg/model"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func memberRole(fl validator.FieldLevel) bool {
	return model.Role(fl.Field().String()).Valid()
}

// RegisterValidation Inspiration: https://blog.logrocket.com/gin-binding-in-go-a-tutorial-with-examples/
func RegisterValidation() error {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		return v.RegisterValidation("memberRole", memberRole)
	}
	return fmt.Errorf("error getting validation engine")
}
