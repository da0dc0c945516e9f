package service

import (
	"io"

	"classroom/internal/model"
)

// Upload is a file received from a client.
type Upload struct {
	Reader   io.Reader
	Size     int64
	Filename string
}

// UserPatch maps user fields to optional new values. A nil field is left
// untouched; a non-nil field overwrites the stored value, even when empty.
type UserPatch struct {
	Name        *string
	Email       *string
	PhoneNumber *string
	Password    *string
	Image       *Upload
}

// applyTo writes the scalar fields of p onto u. hashedPassword replaces the
// plain-text Password, imageURL replaces the Image upload.
func (p UserPatch) applyTo(u *model.User, hashedPassword, imageURL *string) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.PhoneNumber != nil {
		u.PhoneNumber = *p.PhoneNumber
	}
	if hashedPassword != nil {
		u.Password = *hashedPassword
	}
	if imageURL != nil {
		u.Image = imageURL
	}
}
