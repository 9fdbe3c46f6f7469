package apitest

import (
	"net/http"

	"github.com/haierkeys/bitshared-cli/internal/domain"
)

func (b *Backend) accountByID(id int64) *account {
	for _, a := range b.accounts {
		if a.user.ID == id {
			return a
		}
	}
	return nil
}

// author 返回用户资料快照
func (b *Backend) author(userID int64) domain.Profile {
	if p, exists := b.profiles[userID]; exists {
		snapshot := *p
		if a := b.accountByID(userID); a != nil {
			snapshot.Role = a.user.Role
		}
		return snapshot
	}
	if a := b.accountByID(userID); a != nil {
		return domain.Profile{UserID: a.user.ID, Username: a.user.Username, Email: a.user.Email, Role: a.user.Role}
	}
	return domain.Profile{UserID: userID}
}

func (b *Backend) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
		Email    string `json:"email"`
	}
	if err := decode(r, &req); err != nil {
		fail(w, "bad request")
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, exists := b.accounts[req.Username]; exists {
		fail(w, "用户名已存在")
		return
	}
	id := b.addUser(req.Username, req.Password, req.Email, domain.RoleNormal)
	ok(w, b.accountByID(id).user)
}

func (b *Backend) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := decode(r, &req); err != nil {
		fail(w, "bad request")
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	a, exists := b.accounts[req.Username]
	if !exists || a.password != req.Password {
		fail(w, "用户名或密码错误")
		return
	}
	ok(w, a.user)
}

type profileRequest struct {
	UserID   *int64 `json:"userId"`
	Nickname string `json:"nickname"`
	Bio      string `json:"bio"`
	Major    string `json:"major"`
}

func (b *Backend) handleCreateProfile(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	if err := decode(r, &req); err != nil || req.UserID == nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "userId required"})
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	a := b.accountByID(*req.UserID)
	if a == nil {
		writeJSON(w, http.StatusNotFound, map[string]any{"message": "user not found"})
		return
	}
	p := &domain.Profile{
		UserID:   a.user.ID,
		Username: a.user.Username,
		Email:    a.user.Email,
		Role:     a.user.Role,
		Nickname: &req.Nickname,
		Bio:      &req.Bio,
		Major:    &req.Major,
	}
	b.profiles[a.user.ID] = p
	writeJSON(w, http.StatusOK, p)
}

func (b *Backend) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	p, exists := b.profiles[pathInt(r, "userId")]
	if !exists {
		writeJSON(w, http.StatusNotFound, map[string]any{"message": "profile not found"})
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (b *Backend) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "bad request"})
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	p, exists := b.profiles[pathInt(r, "userId")]
	if !exists {
		writeJSON(w, http.StatusNotFound, map[string]any{"message": "profile not found"})
		return
	}
	p.Nickname, p.Bio, p.Major = &req.Nickname, &req.Bio, &req.Major
	writeJSON(w, http.StatusOK, p)
}
