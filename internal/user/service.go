package user

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/vacinafacil/api/internal/auth"
	"github.com/vacinafacil/api/internal/config"
	"github.com/vacinafacil/api/internal/repo"
	"github.com/vacinafacil/api/internal/validate"
)

var (
	// ErrEmailTaken indica e-mail já cadastrado por outro usuário.
	ErrEmailTaken = errors.New("existing user with this e-mail")
	// ErrTelefoneTaken indica telefone já cadastrado por outro usuário.
	ErrTelefoneTaken = errors.New("existing user with this telefone")
	// ErrBadPassword indica senha incorreta na autenticação.
	ErrBadPassword = errors.New("senha incorreta")
	// ErrAdminMismatch indica credenciais que não correspondem ao administrador.
	ErrAdminMismatch = errors.New("credenciais de administrador inválidas")
)

type userRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (repo.User, error)
	GetByEmail(ctx context.Context, email string) (repo.User, error)
	GetByTelefone(ctx context.Context, telefone string) (repo.User, error)
	List(ctx context.Context) ([]repo.User, error)
	Insert(ctx context.Context, u repo.User) error
	Update(ctx context.Context, u repo.User) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	UpdateImage(ctx context.Context, id uuid.UUID, image string) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListReservations(ctx context.Context, userID uuid.UUID) ([]repo.Reservation, error)
	ListVaccinations(ctx context.Context, userID uuid.UUID) ([]repo.VaccinationRecord, error)
}

// Service concentra as regras de cadastro, autenticação e perfil.
type Service struct {
	repo   userRepository
	tokens *auth.TokenManager
	admin  config.AdminConfig
}

func NewService(r userRepository, tokens *auth.TokenManager, admin config.AdminConfig) *Service {
	return &Service{repo: r, tokens: tokens, admin: admin}
}

// Profile agrega o usuário com suas reservas e registros de vacinação.
type Profile struct {
	User         repo.User                `json:"user"`
	Reservations []repo.Reservation       `json:"requestReservation"`
	Vaccinations []repo.VaccinationRecord `json:"vaccination"`
}

// Register cadastra um novo usuário. O pré-check de unicidade produz a
// mensagem amigável; a constraint do banco decide em caso de corrida.
func (s *Service) Register(ctx context.Context, input validate.RegisterUserInput) (repo.User, error) {
	if _, err := s.repo.GetByEmail(ctx, input.Email); err == nil {
		return repo.User{}, ErrEmailTaken
	} else if !errors.Is(err, repo.ErrNotFound) {
		return repo.User{}, fmt.Errorf("check email: %w", err)
	}

	if _, err := s.repo.GetByTelefone(ctx, input.Telefone); err == nil {
		return repo.User{}, ErrTelefoneTaken
	} else if !errors.Is(err, repo.ErrNotFound) {
		return repo.User{}, fmt.Errorf("check telefone: %w", err)
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return repo.User{}, fmt.Errorf("hash password: %w", err)
	}

	u := repo.User{
		ID:           uuid.New(),
		Name:         input.Name,
		PasswordHash: hash,
		Email:        input.Email,
		Telefone:     input.Telefone,
		Latitude:     *input.Latitude,
		Longitude:    *input.Longitude,
	}

	if err := s.repo.Insert(ctx, u); err != nil {
		if repo.IsUniqueViolation(err) {
			return repo.User{}, ErrEmailTaken
		}
		return repo.User{}, fmt.Errorf("insert user: %w", err)
	}

	return u, nil
}

// Authenticate valida e-mail e senha e emite um token de usuário.
func (s *Service) Authenticate(ctx context.Context, input validate.AuthenticateInput) (string, repo.User, error) {
	u, err := s.repo.GetByEmail(ctx, input.Email)
	if err != nil {
		return "", repo.User{}, err
	}

	ok, err := auth.VerifyPassword(input.Password, u.PasswordHash)
	if err != nil {
		return "", repo.User{}, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return "", repo.User{}, ErrBadPassword
	}

	token, err := s.tokens.MintUser(u.ID.String(), u.Name)
	if err != nil {
		return "", repo.User{}, fmt.Errorf("mint token: %w", err)
	}
	return token, u, nil
}

// AuthenticateAdmin compara as credenciais com o administrador configurado no
// processo e emite um token do domínio administrativo.
func (s *Service) AuthenticateAdmin(_ context.Context, input validate.AuthenticateAdminInput) (string, error) {
	nameOK := subtle.ConstantTimeCompare([]byte(input.Name), []byte(s.admin.Name)) == 1
	emailOK := subtle.ConstantTimeCompare([]byte(strings.ToLower(input.Email)), []byte(strings.ToLower(s.admin.Email))) == 1
	passOK := subtle.ConstantTimeCompare([]byte(input.Password), []byte(s.admin.Password)) == 1
	if !nameOK || !emailOK || !passOK {
		return "", ErrAdminMismatch
	}

	return s.tokens.MintAdmin(s.admin.Email, s.admin.Name)
}

// GetProfile devolve o usuário com reservas e vacinações associadas.
func (s *Service) GetProfile(ctx context.Context, id uuid.UUID) (Profile, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Profile{}, err
	}

	reservations, err := s.repo.ListReservations(ctx, id)
	if err != nil {
		return Profile{}, fmt.Errorf("list reservations: %w", err)
	}

	vaccinations, err := s.repo.ListVaccinations(ctx, id)
	if err != nil {
		return Profile{}, fmt.Errorf("list vaccinations: %w", err)
	}

	return Profile{User: u, Reservations: reservations, Vaccinations: vaccinations}, nil
}

// List devolve todos os usuários cadastrados (rota administrativa).
func (s *Service) List(ctx context.Context) ([]repo.User, error) {
	return s.repo.List(ctx)
}

// Update edita o perfil do próprio usuário, rejeitando colisão de e-mail ou
// telefone com outro cadastro.
func (s *Service) Update(ctx context.Context, id uuid.UUID, input validate.UpdateUserInput) (repo.User, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return repo.User{}, err
	}

	if other, err := s.repo.GetByEmail(ctx, input.Email); err == nil && other.ID != id {
		return repo.User{}, ErrEmailTaken
	} else if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return repo.User{}, fmt.Errorf("check email: %w", err)
	}

	if other, err := s.repo.GetByTelefone(ctx, input.Telefone); err == nil && other.ID != id {
		return repo.User{}, ErrTelefoneTaken
	} else if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return repo.User{}, fmt.Errorf("check telefone: %w", err)
	}

	current.Name = input.Name
	current.Email = input.Email
	current.Telefone = input.Telefone
	current.Latitude = *input.Latitude
	current.Longitude = *input.Longitude

	if err := s.repo.Update(ctx, current); err != nil {
		if repo.IsUniqueViolation(err) {
			return repo.User{}, ErrEmailTaken
		}
		return repo.User{}, fmt.Errorf("update user: %w", err)
	}
	return current, nil
}

// ResetPassword troca a senha do usuário identificado pelo e-mail.
func (s *Service) ResetPassword(ctx context.Context, input validate.ResetPasswordInput) error {
	u, err := s.repo.GetByEmail(ctx, input.Email)
	if err != nil {
		return err
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	return s.repo.UpdatePassword(ctx, u.ID, hash)
}

// Delete remove o usuário; reservas e registros caem por cascata no schema.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// AttachImage troca a referência de imagem de perfil e devolve a anterior
// para limpeza pelo chamador.
func (s *Service) AttachImage(ctx context.Context, id uuid.UUID, image string) (previous string, err error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if u.Image != nil {
		previous = *u.Image
	}
	if err := s.repo.UpdateImage(ctx, id, image); err != nil {
		return "", err
	}
	return previous, nil
}
