package currency

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/NastyaGoryachaya/currency-rate-service/internal/domain"
	derrors "github.com/NastyaGoryachaya/currency-rate-service/internal/errors"
	"github.com/NastyaGoryachaya/currency-rate-service/internal/repository"
	"github.com/go-playground/validator/v10"
)

// Справочник валют: чтение, добавление, удаление

const codeRule = "len=3,alpha,uppercase"

type Repository interface {
	GetAllCurrencies(ctx context.Context) ([]domain.Currency, error)
	GetCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error)
	CreateCurrency(ctx context.Context, c domain.Currency) error
	DeleteCurrency(ctx context.Context, code string) error
}

type Service struct {
	repo     Repository
	validate *validator.Validate
	log      *slog.Logger
}

func New(repo Repository, log *slog.Logger) *Service {
	return &Service{repo: repo, validate: validator.New(validator.WithRequiredStructEnabled()), log: log}
}

func (s *Service) List(ctx context.Context) ([]domain.Currency, error) {
	list, err := s.repo.GetAllCurrencies(ctx)
	if err != nil {
		s.log.Error("currencies.list failed", slog.String("err", err.Error()))
		return nil, err
	}
	return list, nil
}

func (s *Service) Get(ctx context.Context, code string) (domain.Currency, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	c, err := s.repo.GetCurrencyByCode(ctx, code)
	if errors.Is(err, repository.ErrNotFound) {
		return domain.Currency{}, fmt.Errorf("%w: currency %s", derrors.ErrNotFound, code)
	}
	if err != nil {
		s.log.Error("currencies.get failed", slog.String("code", code), slog.String("err", err.Error()))
		return domain.Currency{}, err
	}
	return *c, nil
}

// Create добавляет валюту. Код — три латинские буквы, приводится к верхнему регистру.
func (s *Service) Create(ctx context.Context, c domain.Currency) (domain.Currency, error) {
	c.Code = strings.ToUpper(strings.TrimSpace(c.Code))
	c.Name = strings.TrimSpace(c.Name)
	c.Symbol = strings.TrimSpace(c.Symbol)
	if err := s.validate.Var(c.Code, codeRule); err != nil {
		return domain.Currency{}, derrors.Validation("currency code %q must be 3 latin letters", c.Code)
	}
	if c.Name == "" {
		return domain.Currency{}, derrors.Validation("currency name is required")
	}

	err := s.repo.CreateCurrency(ctx, c)
	if errors.Is(err, repository.ErrAlreadyExists) {
		return domain.Currency{}, derrors.Validation("currency %s already exists", c.Code)
	}
	if err != nil {
		s.log.Error("currencies.create failed", slog.String("code", c.Code), slog.String("err", err.Error()))
		return domain.Currency{}, err
	}
	s.log.Info("currencies.create ok", slog.String("code", c.Code))
	return c, nil
}

// Delete удаляет валюту; курсы с ней удаляются каскадно.
func (s *Service) Delete(ctx context.Context, code string) error {
	code = strings.ToUpper(strings.TrimSpace(code))
	err := s.repo.DeleteCurrency(ctx, code)
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%w: currency %s", derrors.ErrNotFound, code)
	}
	if err != nil {
		s.log.Error("currencies.delete failed", slog.String("code", code), slog.String("err", err.Error()))
		return err
	}
	s.log.Info("currencies.delete ok", slog.String("code", code))
	return nil
}
