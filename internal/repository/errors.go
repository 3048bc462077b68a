package repository

import "errors"

var (
	// ErrNotFound — запись не найдена
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyExists — нарушение уникальности ключа
	ErrAlreadyExists = errors.New("record already exists")
)
