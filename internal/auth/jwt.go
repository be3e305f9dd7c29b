package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Role distingue os dois domínios de confiança da API. Um token de usuário
// nunca satisfaz uma rota de administrador, e vice-versa.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

var (
	// ErrTokenMissing indica ausência de credencial na requisição.
	ErrTokenMissing = errors.New("token ausente")
	// ErrTokenExpired indica credencial expirada.
	ErrTokenExpired = errors.New("token expirado")
	// ErrWrongRole indica credencial válida do outro domínio de confiança.
	ErrWrongRole = errors.New("token de papel incorreto")
	// ErrTokenInvalid indica assinatura ou formato inválido.
	ErrTokenInvalid = errors.New("token inválido")
)

// Claims representa as informações presentes em um token de acesso.
type Claims struct {
	Name string `json:"name"`
	jwt.RegisteredClaims
}

// Identity é o resultado de uma classificação bem sucedida.
type Identity struct {
	Role    Role
	Subject string
	Name    string
}

// TokenManager assina e classifica tokens dos dois papéis, cada um com seu
// próprio segredo carregado uma vez na inicialização.
type TokenManager struct {
	userSecret  []byte
	adminSecret []byte
	accessTTL   time.Duration
}

// NewTokenManager cria o gerenciador com os dois segredos e TTL configurados.
func NewTokenManager(userSecret, adminSecret string, accessTTL time.Duration) *TokenManager {
	return &TokenManager{
		userSecret:  []byte(userSecret),
		adminSecret: []byte(adminSecret),
		accessTTL:   accessTTL,
	}
}

// MintUser emite um token HS256 assinado com o segredo de usuário.
func (m *TokenManager) MintUser(subject, name string) (string, error) {
	return m.mint(subject, name, m.userSecret)
}

// MintAdmin emite um token HS256 assinado com o segredo de administrador.
func (m *TokenManager) MintAdmin(subject, name string) (string, error) {
	return m.mint(subject, name, m.adminSecret)
}

func (m *TokenManager) mint(subject, name string, secret []byte) (string, error) {
	now := time.Now().UTC()

	claims := Claims{
		Name: name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(now.Add(m.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// RequireRole valida o token contra o segredo do papel exigido. Quando a
// verificação falha, tenta o segredo do outro papel apenas para produzir o
// diagnóstico mais específico: um token válido do outro domínio vira
// ErrWrongRole em vez de ErrTokenInvalid.
func (m *TokenManager) RequireRole(tokenString string, role Role) (*Identity, error) {
	if tokenString == "" {
		return nil, ErrTokenMissing
	}

	secret, other := m.userSecret, m.adminSecret
	if role == RoleAdmin {
		secret, other = m.adminSecret, m.userSecret
	}

	claims, err := parse(tokenString, secret)
	if err == nil {
		return &Identity{Role: role, Subject: claims.Subject, Name: claims.Name}, nil
	}

	_, otherErr := parse(tokenString, other)
	if otherErr == nil {
		return nil, ErrWrongRole
	}

	// Um token expirado falha na verificação dos dois segredos; a expiração
	// aparece no erro do segredo que de fato o assinou.
	if errors.Is(err, jwt.ErrTokenExpired) || errors.Is(otherErr, jwt.ErrTokenExpired) {
		return nil, ErrTokenExpired
	}
	return nil, ErrTokenInvalid
}

// Classify identifica o papel de um token tentando cada segredo conhecido.
func (m *TokenManager) Classify(tokenString string) (*Identity, error) {
	if tokenString == "" {
		return nil, ErrTokenMissing
	}

	claims, userErr := parse(tokenString, m.userSecret)
	if userErr == nil {
		return &Identity{Role: RoleUser, Subject: claims.Subject, Name: claims.Name}, nil
	}

	claims, adminErr := parse(tokenString, m.adminSecret)
	if adminErr == nil {
		return &Identity{Role: RoleAdmin, Subject: claims.Subject, Name: claims.Name}, nil
	}

	if errors.Is(userErr, jwt.ErrTokenExpired) || errors.Is(adminErr, jwt.ErrTokenExpired) {
		return nil, ErrTokenExpired
	}
	return nil, ErrTokenInvalid
}

func parse(tokenString string, secret []byte) (*Claims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	token, err := parser.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
