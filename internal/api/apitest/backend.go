// Package apitest runs an in-memory course-sharing backend on httptest
// for tests of the api client and the controllers built on it.
package apitest

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/bytedance/sonic"
	"github.com/haierkeys/bitshared-cli/internal/domain"
)

// Fault 一次性故障注入
type Fault struct {
	// Status 非 0 时返回该 HTTP 状态码，为 0 时返回 success:false
	Status  int
	Message string
}

type account struct {
	user     domain.User
	password string
}

type comment struct {
	domain.Comment
	rootID int64
}

// Backend 内存中的后端实现
type Backend struct {
	Server *httptest.Server

	mu       sync.Mutex
	nextID   int64
	calls    map[string]int
	faults   map[string]Fault
	majors   []*domain.Major
	courses  map[int64][]*domain.Course
	roots    []*domain.FileNode
	files    map[string][]byte
	accounts map[string]*account
	profiles map[int64]*domain.Profile
	perms    map[[2]int64]bool
	forums   map[int64]*domain.Forum
	topics   map[int64]*domain.Topic
	comments map[int64]*comment
	stored   map[string][]byte
}

// New starts a backend; call Close when done
func New() *Backend {
	b := &Backend{
		nextID:   100,
		calls:    map[string]int{},
		faults:   map[string]Fault{},
		courses:  map[int64][]*domain.Course{},
		files:    map[string][]byte{},
		accounts: map[string]*account{},
		profiles: map[int64]*domain.Profile{},
		perms:    map[[2]int64]bool{},
		forums:   map[int64]*domain.Forum{},
		topics:   map[int64]*domain.Topic{},
		comments: map[int64]*comment{},
		stored:   map[string][]byte{},
	}
	b.Server = httptest.NewServer(b.routes())
	return b
}

// URL 后端根地址，带结尾斜杠
func (b *Backend) URL() string {
	return b.Server.URL + "/"
}

func (b *Backend) Close() {
	b.Server.Close()
}

// Calls counts requests whose path starts with prefix, e.g. "/api/permissions"
func (b *Backend) Calls(prefix string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for k, v := range b.calls {
		if strings.HasPrefix(k, prefix) {
			n += v
		}
	}
	return n
}

// FailNext makes the next request to path fail with f
func (b *Backend) FailNext(path string, f Fault) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.faults[path] = f
}

func (b *Backend) id() int64 {
	b.nextID++
	return b.nextID
}

// ---------------- seeding ----------------

// AddMajor 添加专业及其课程
func (b *Backend) AddMajor(m *domain.Major, courses ...*domain.Course) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.majors = append(b.majors, m)
	b.courses[m.MajorNo] = append(b.courses[m.MajorNo], courses...)
}

// AddCourseRoot creates the course directory; its name must start with
// the course number, the way the backend locates course folders.
func (b *Backend) AddCourseRoot(name string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.roots = append(b.roots, &domain.FileNode{Name: name, Type: domain.NodeTypeDirectory, Children: []*domain.FileNode{}})
}

// AddUser registers an account with a profile and returns its id
func (b *Backend) AddUser(username, password string, role domain.Role) int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.addUser(username, password, username+"@example.com", role)
}

func (b *Backend) addUser(username, password, email string, role domain.Role) int64 {
	id := b.id()
	b.accounts[username] = &account{
		user:     domain.User{ID: id, Username: username, Email: email, Role: role},
		password: password,
	}
	return id
}

// SetPermission 设置用户对课程的权限
func (b *Backend) SetPermission(userID, courseNo int64, allowed bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.perms[[2]int64{userID, courseNo}] = allowed
}

// AddForum 为课程创建论坛
func (b *Backend) AddForum(courseNo int64, forum *domain.Forum) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.forums[courseNo] = forum
}

// Role 返回用户当前角色
func (b *Backend) Role(username string) domain.Role {
	b.mu.Lock()
	defer b.mu.Unlock()
	if a, ok := b.accounts[username]; ok {
		return a.user.Role
	}
	return 0
}

// StoredFile returns the bytes of an uploaded course file
func (b *Backend) StoredFile(path string) ([]byte, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	data, ok := b.files[path]
	return data, ok
}

// ---------------- helpers ----------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	body, _ := sonic.Marshal(v)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func ok(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "ok", "data": data})
}

func fail(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusOK, map[string]any{"success": false, "message": msg, "data": nil})
}

func pathInt(r *http.Request, name string) int64 {
	v, _ := strconv.ParseInt(r.PathValue(name), 10, 64)
	return v
}

func queryInt(r *http.Request, name string, def int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return def
	}
	return v
}

func decode(r *http.Request, v any) error {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return err
	}
	return sonic.Unmarshal(body, v)
}

// middleware counts calls and applies injected faults
func (b *Backend) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.calls[r.URL.Path]++
		f, faulted := b.faults[r.URL.Path]
		delete(b.faults, r.URL.Path)
		b.mu.Unlock()

		if faulted {
			if f.Status != 0 {
				writeJSON(w, f.Status, map[string]any{"success": false, "message": f.Message})
				return
			}
			fail(w, f.Message)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (b *Backend) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/majors", b.handleMajors)
	mux.HandleFunc("GET /api/majors/{no}/courses", b.handleCourses)

	mux.HandleFunc("GET /api/course/{no}/file-tree", b.handleFileTree)
	mux.HandleFunc("POST /api/files/create_dir", b.handleCreateDir)
	mux.HandleFunc("POST /api/files/delete", b.handleDelete)
	mux.HandleFunc("POST /api/files/upload", b.handleUpload)
	mux.HandleFunc("GET /api/files/download", b.handleDownload)

	mux.HandleFunc("POST /api/auth/register", b.handleRegister)
	mux.HandleFunc("POST /api/auth/login", b.handleLogin)
	mux.HandleFunc("POST /api/profile", b.handleCreateProfile)
	mux.HandleFunc("GET /api/profile/{userId}", b.handleGetProfile)
	mux.HandleFunc("PUT /api/profile/{userId}", b.handleUpdateProfile)

	mux.HandleFunc("GET /api/permissions/check", b.handleCheckPermission)
	mux.HandleFunc("POST /api/permissions/grant", b.handleGrant)
	mux.HandleFunc("POST /api/permissions/revoke", b.handleRevoke)

	mux.HandleFunc("GET /api/forums/by-course/{no}", b.handleForum)
	mux.HandleFunc("GET /api/topics/by-forum/{id}", b.handleTopics)
	mux.HandleFunc("GET /api/topics/by-topic/{id}", b.handleTopic)
	mux.HandleFunc("POST /api/topics/create/{userId}", b.handleCreateTopic)
	mux.HandleFunc("DELETE /api/topics/delete/{id}", b.handleDeleteTopic)
	mux.HandleFunc("GET /api/attachments/download/{forumNo}/{filename}", b.handleAttachment)

	mux.HandleFunc("GET /api/comments/root/{topicId}", b.handleRootComments)
	mux.HandleFunc("GET /api/comments/detail/{id}", b.handleCommentDetail)
	mux.HandleFunc("GET /api/comments/{rootId}/{kind}", b.handleReplies)
	mux.HandleFunc("POST /api/comments/create/{userId}", b.handleCreateComment)
	mux.HandleFunc("POST /api/comments/like/{id}", b.handleLike(1))
	mux.HandleFunc("POST /api/comments/unlike/{id}", b.handleLike(-1))
	mux.HandleFunc("DELETE /api/comments/delete/{id}", b.handleDeleteComment)

	return b.middleware(mux)
}

// ---------------- catalog ----------------

func (b *Backend) handleMajors(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	ok(w, b.majors)
}

func (b *Backend) handleCourses(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	ok(w, b.courses[pathInt(r, "no")])
}

// ---------------- permissions ----------------

func (b *Backend) handleCheckPermission(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	uid, _ := strconv.ParseInt(r.URL.Query().Get("userId"), 10, 64)
	cno, _ := strconv.ParseInt(r.URL.Query().Get("courseNo"), 10, 64)
	ok(w, domain.PermissionResult{HasPermission: b.perms[[2]int64{uid, cno}]})
}

func (b *Backend) handleGrant(w http.ResponseWriter, r *http.Request) {
	var req struct {
		GrantorID      int64  `json:"grantorId"`
		TargetUsername string `json:"targetUsername"`
		TargetRole     int    `json:"targetRole"`
		MajorNo        *int64 `json:"majorNo"`
	}
	if err := decode(r, &req); err != nil {
		fail(w, "bad request")
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	a, exists := b.accounts[req.TargetUsername]
	if !exists {
		fail(w, "目标用户不存在")
		return
	}
	a.user.Role = domain.Role(req.TargetRole)
	ok(w, "授权成功")
}

func (b *Backend) handleRevoke(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RevokerID      int64  `json:"revokerId"`
		TargetUsername string `json:"targetUsername"`
	}
	if err := decode(r, &req); err != nil {
		fail(w, "bad request")
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	a, exists := b.accounts[req.TargetUsername]
	if !exists {
		fail(w, "目标用户不存在")
		return
	}
	a.user.Role = domain.RoleNormal
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": nil, "data": nil})
}

func sortedIDs[T any](m map[int64]T) []int64 {
	ids := make([]int64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
