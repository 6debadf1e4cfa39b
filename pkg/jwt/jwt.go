package jwt

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims includes the standard JWT claims plus the POS actor context.
// StoreID and WarehouseID travel in the token so the cart and checkout
// handlers never have to look the operator's context up in the DB.
type Claims struct {
	jwt.RegisteredClaims
	UserID      int64 `json:"user_id"`
	StoreID     int64 `json:"store_id"`
	WarehouseID int64 `json:"warehouse_id"`
}

// Generate signs a token carrying userID, storeID and warehouseID.
func Generate(secret string, userID, storeID, warehouseID int64, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: empty secret")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		UserID:      userID,
		StoreID:     storeID,
		WarehouseID: warehouseID,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse validates the token and returns the actor context.
// Returns an error when the token is invalid, expired or wrongly signed.
func Parse(secret, tokenString string) (userID, storeID, warehouseID int64, err error) {
	if secret == "" {
		return 0, 0, 0, fmt.Errorf("jwt: empty secret")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return 0, 0, 0, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return 0, 0, 0, fmt.Errorf("invalid claims")
	}
	return claims.UserID, claims.StoreID, claims.WarehouseID, nil
}
