package model

import (
	"strings"

	"github.com/google/uuid"
)

// ゲストIDの接頭辞。ユーザーIDはUUIDなので名前空間が衝突しない。
const guestIdentityPrefix = "guest_"

// Identityはカート操作の主体。
// 認証済みユーザーのID、または セッション毎に発行するゲストID のどちらか。
type Identity string

// ゲストIDを新規発行
func NewGuestIdentity() Identity {
	return Identity(guestIdentityPrefix + uuid.NewString())
}

// 認証ユーザーのIDをIdentityに変換
func UserIdentity(userID string) Identity {
	return Identity(userID)
}

// ゲストかどうか
func (i Identity) IsGuest() bool {
	return strings.HasPrefix(string(i), guestIdentityPrefix)
}

func (i Identity) String() string {
	return string(i)
}
