package auth

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrMissingToken : header absent ou sans préfixe "Bearer "
	ErrMissingToken = errors.New("token manquant ou mal formé")
	// ErrInvalidToken : le token est présent mais rejeté par la vérification
	ErrInvalidToken = errors.New("token invalide")
)

// Identity est l'identité vérifiée d'une requête. Éphémère : jamais persistée.
type Identity struct {
	UID   string
	Email string
}

// TokenVerifier valide une credential bearer et rend l'identité du porteur
type TokenVerifier interface {
	Verify(authHeader string) (Identity, error)
}

// JWTVerifier vérifie des tokens HS256 émis par le fournisseur d'identité
type JWTVerifier struct {
	secret []byte
}

func NewJWTVerifier(secret string) *JWTVerifier {
	return &JWTVerifier{secret: []byte(secret)}
}

// NewJWTVerifierFromEnv lit JWT_SECRET (fatal si absent serait trop strict :
// un secret vide fera simplement échouer toutes les vérifications)
func NewJWTVerifierFromEnv() *JWTVerifier {
	return NewJWTVerifier(os.Getenv("JWT_SECRET"))
}

// Verify extrait le token du header Authorization et le valide.
// Aucun retry : une credential refusée est un rejet définitif de la requête.
func (v *JWTVerifier) Verify(authHeader string) (Identity, error) {
	if authHeader == "" {
		return Identity{}, ErrMissingToken
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return Identity{}, ErrMissingToken
	}

	token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("méthode de signature inattendue: %v", token.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil || !token.Valid {
		return Identity{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, ErrInvalidToken
	}

	uid, ok := claims["uid"].(string)
	if !ok || uid == "" {
		return Identity{}, ErrInvalidToken
	}

	email, _ := claims["email"].(string)
	return Identity{UID: uid, Email: email}, nil
}

// GenerateToken émet un token signé pour un sujet (outillage + tests)
func GenerateToken(secret, uid, email string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"uid":   uid,
		"email": email,
		"exp":   time.Now().Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
