package session

import (
	"net/http"

	"storefront/internal/domain/model"

	"github.com/gorilla/sessions"
)

const (
	sessionName = "storefront_session"
	guestIDKey  = "guest_session_id"
)

// GuestSessionStore はゲストIDを署名付きCookieセッションに保持する。
// ログイン前のカートはこのIDに紐づく。
type GuestSessionStore struct {
	store *sessions.CookieStore
}

func NewGuestSessionStore(secret string, secure bool) *GuestSessionStore {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   60 * 60 * 24 * 30, // 30日
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &GuestSessionStore{store: store}
}

// Current はセッションに保存済みのゲストIDを返す。未発行なら false。
func (s *GuestSessionStore) Current(r *http.Request) (model.Identity, bool) {
	sess, err := s.store.Get(r, sessionName)
	if err != nil {
		return "", false
	}

	raw, ok := sess.Values[guestIDKey]
	if !ok {
		return "", false
	}

	id, ok := raw.(string)
	if !ok || id == "" {
		return "", false
	}

	identity := model.Identity(id)
	if !identity.IsGuest() {
		return "", false
	}
	return identity, true
}

// Issue は新しいゲストIDを発行してセッションに保存する。
func (s *GuestSessionStore) Issue(r *http.Request, w http.ResponseWriter) (model.Identity, error) {
	sess, _ := s.store.Get(r, sessionName)

	identity := model.NewGuestIdentity()
	sess.Values[guestIDKey] = identity.String()

	if err := sess.Save(r, w); err != nil {
		return "", err
	}
	return identity, nil
}

// Clear はゲストIDをセッションから取り除く（マージ完了後に呼ぶ）。
func (s *GuestSessionStore) Clear(r *http.Request, w http.ResponseWriter) error {
	sess, err := s.store.Get(r, sessionName)
	if err != nil {
		return err
	}

	delete(sess.Values, guestIDKey)
	return sess.Save(r, w)
}
