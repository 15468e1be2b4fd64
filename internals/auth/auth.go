package auth

import (
	"context"
	"errors"
	"time"

	"github.com/footstocks/api-server/internals/store"
	"github.com/footstocks/api-server/pkg/kvstore"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type AuthService struct {
	KV     kvstore.KVStore
	Store  store.Store
	Secret []byte

	// StartingBalance is credited to every new account at signup.
	StartingBalance decimal.Decimal
}

func New(kv kvstore.KVStore, st store.Store, secret string, startingBalance decimal.Decimal) *AuthService {
	return &AuthService{
		KV:              kv,
		Store:           st,
		Secret:          []byte(secret),
		StartingBalance: startingBalance,
	}
}

func (a *AuthService) SignUp(ctx context.Context, signUpDetails SignUpRequestBody) error {
	if signUpDetails.Email == "" || signUpDetails.Password == "" {
		return errors.New("email and password are required")
	}

	_, err := a.Store.GetAccountByEmail(ctx, signUpDetails.Email)
	if err == nil {
		return errors.New("user already exists")
	}
	if err != store.ErrNotFound {
		return err
	}

	return a.Store.CreateAccount(ctx, &store.Account{
		ID:        uuid.New().String(),
		Username:  signUpDetails.Username,
		Email:     signUpDetails.Email,
		Password:  signUpDetails.Password,
		Balance:   a.StartingBalance,
		CreatedAt: time.Now(),
	})
}

func (a *AuthService) Login(ctx context.Context, loginDetails LoginRequestBody) (string, error) {
	account, err := a.Store.GetAccountByEmail(ctx, loginDetails.Email)
	if err != nil {
		return "", err
	}

	// Verify the password
	if account.Password != loginDetails.Password {
		return "", errors.New("invalid credentials")
	}

	token, err := a.GenerateToken(account.ID)
	if err != nil {
		return "", err
	}

	// Insert the token into the KV store {List of tokens for a user: Multiple devices}
	if err := a.KV.RPush("session_token_"+account.ID, token); err != nil {
		return "", err
	}
	return token, nil
}

func (a *AuthService) GenerateToken(accountID string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": accountID,
		"exp":     time.Now().Add(time.Hour * 72).Unix(),
	})

	tokenString, err := token.SignedString(a.Secret)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

func (a *AuthService) ValidateToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return a.Secret, nil
	})
	if err != nil {
		return "", err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		accountID, ok := claims["user_id"].(string)
		if !ok {
			return "", errors.New("invalid token")
		}
		return accountID, nil
	}

	return "", errors.New("invalid token")
}

func (a *AuthService) RevokeToken(accountID string, tokenString string) error {
	tokens, err := a.KV.LRange("session_token_"+accountID, 0, -1)
	if err != nil {
		return err
	}

	for _, t := range tokens {
		if t == tokenString {
			if err := a.KV.LRem("session_token_"+accountID, 1, t); err != nil {
				return err
			}
			break
		}
	}

	return nil
}

func (a *AuthService) CheckIfTokenIsWhiteListed(accountID string, tokenString string) bool {
	tokens, err := a.KV.LRange("session_token_"+accountID, 0, -1)
	if err != nil {
		return false
	}

	for _, t := range tokens {
		if t == tokenString {
			return true
		}
	}

	return false
}

func (a *AuthService) Logout(accountID string, tokenString string) error {
	return a.RevokeToken(accountID, tokenString)
}
