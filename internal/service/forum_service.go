package service

import (
	"context"
	"sync"

	"github.com/haierkeys/bitshared-cli/internal/api"
	"github.com/haierkeys/bitshared-cli/internal/domain"
	"github.com/haierkeys/bitshared-cli/internal/dto"
	"github.com/haierkeys/bitshared-cli/pkg/code"
	"github.com/haierkeys/bitshared-cli/pkg/logger"
	"github.com/haierkeys/bitshared-cli/pkg/storage"
	"github.com/haierkeys/bitshared-cli/pkg/validator"
	"github.com/haierkeys/bitshared-cli/pkg/workerpool"
	"go.uber.org/zap"
)

// ForumState 论坛控制器状态快照
type ForumState struct {
	Forum        *domain.Forum
	Topics       []*domain.Topic
	TopicsTotal  int64
	TopicID      int64
	RootComments *domain.CommentPage
	ReplyRootID  int64
	Replies      *domain.CommentPage
	Loading      bool
}

// ForumService forum, topic and two-tier comment controller.
// Every load replaces its collection wholesale; nothing is merged or
// inserted optimistically.
// ForumService 论坛控制器
type ForumService interface {
	InitForum(ctx context.Context, courseNo int64) error
	LoadTopics(ctx context.Context, forumNo int64) error
	LoadTopic(ctx context.Context, topicID int64) (*domain.Topic, error)
	LoadRootComments(ctx context.Context, topicID int64, page dto.PageRequest) error
	LoadReplies(ctx context.Context, rootID int64, page dto.PageRequest) error
	CommentDetail(ctx context.Context, commentID int64) (*domain.CommentDetail, error)
	// RootOf follows parentId links up to the root comment of the thread
	RootOf(ctx context.Context, commentID int64) (int64, error)

	CreateTopic(ctx context.Context, req *dto.CreateTopicRequest, attachments []dto.FilePart) (*domain.Topic, error)
	// PostComment reloads root comments, and the replies of rootID when given
	PostComment(ctx context.Context, req *dto.CreateCommentRequest, rootID *int64, attachments []dto.FilePart) (*domain.Comment, error)
	// ToggleCommentLike unlikes when currentlyLiked, likes otherwise, then reloads root comments
	ToggleCommentLike(ctx context.Context, commentID int64, currentlyLiked bool, topicID int64) error
	DeleteTopic(ctx context.Context, topicID, forumNo int64) error
	RemoveComment(ctx context.Context, commentID, topicID int64, rootID *int64) error
	DownloadAttachment(ctx context.Context, attachment *domain.Attachment, forumNo int64) (string, error)

	State() ForumState
}

type forumAPI interface {
	ForumByCourse(ctx context.Context, courseNo int64) (*domain.Forum, error)
	TopicsByForum(ctx context.Context, forumNo int64) (*domain.TopicPage, error)
	Topic(ctx context.Context, topicID int64) (*domain.Topic, error)
	CreateTopic(ctx context.Context, userID int64, req *dto.CreateTopicRequest, attachments []dto.FilePart) (*domain.Topic, error)
	DeleteTopic(ctx context.Context, topicID, userID int64) error
	DownloadAttachment(ctx context.Context, forumNo int64, filename string) (*api.Stream, error)
	RootComments(ctx context.Context, topicID int64, page dto.PageRequest) (*domain.CommentPage, error)
	Replies(ctx context.Context, rootID int64, page dto.PageRequest) (*domain.CommentPage, error)
	CreateComment(ctx context.Context, userID int64, req *dto.CreateCommentRequest, attachments []dto.FilePart) (*domain.Comment, error)
	LikeComment(ctx context.Context, commentID int64) error
	UnlikeComment(ctx context.Context, commentID int64) error
	DeleteComment(ctx context.Context, commentID, userID int64) error
	CommentDetail(ctx context.Context, commentID int64) (*domain.CommentDetail, error)
}

type forumService struct {
	api        forumAPI
	session    SessionStore
	validator  *validator.Validator
	downloader *downloader
	config     *ServiceConfig
	logger     *zap.Logger

	mu    sync.RWMutex
	state ForumState
}

func NewForumService(api forumAPI, session SessionStore, v *validator.Validator, sink storage.Storager, pool *workerpool.Pool, config *ServiceConfig, lg *zap.Logger) ForumService {
	if lg == nil {
		lg = zap.NewNop()
	}
	if config == nil {
		config = &ServiceConfig{}
	}
	return &forumService{
		api:        api,
		session:    session,
		validator:  v,
		downloader: &downloader{sink: sink, pool: pool, logger: lg},
		config:     config,
		logger:     lg,
		state:      ForumState{Topics: []*domain.Topic{}},
	}
}

// defaultPage 第 0 页，大小取配置，默认 20
func (s *forumService) defaultPage() dto.PageRequest {
	p := dto.DefaultPage()
	if s.config.DefaultPageSize > 0 {
		p.Size = s.config.DefaultPageSize
	}
	return p
}

func (s *forumService) withPage(page dto.PageRequest) dto.PageRequest {
	if page.Size <= 0 {
		page.Size = s.defaultPage().Size
	}
	if page.Page < 0 {
		page.Page = 0
	}
	return page
}

func (s *forumService) setLoading(v bool) {
	s.mu.Lock()
	s.state.Loading = v
	s.mu.Unlock()
}

// InitForum loads forum metadata then topics. Topics are keyed by the
// forum number when metadata loaded, by the course number otherwise.
// Failures keep the prior state.
func (s *forumService) InitForum(ctx context.Context, courseNo int64) error {
	s.setLoading(true)
	defer s.setLoading(false)

	forumNo := courseNo
	forum, forumErr := s.api.ForumByCourse(ctx, courseNo)
	if forumErr != nil {
		s.logger.Warn("load forum failed", zap.Int64(logger.FieldCourseNo, courseNo), zap.Error(forumErr))
	} else {
		s.mu.Lock()
		s.state.Forum = forum
		s.mu.Unlock()
		forumNo = forum.ForumNo
	}

	return joinErrs(forumErr, s.LoadTopics(ctx, forumNo))
}

func (s *forumService) LoadTopics(ctx context.Context, forumNo int64) error {
	page, err := s.api.TopicsByForum(ctx, forumNo)
	if err != nil {
		s.logger.Warn("load topics failed", zap.Int64(logger.FieldForumNo, forumNo), zap.Error(err))
		return err
	}
	s.mu.Lock()
	s.state.Topics = page.Content
	s.state.TopicsTotal = page.TotalElements
	s.mu.Unlock()
	return nil
}

func (s *forumService) LoadTopic(ctx context.Context, topicID int64) (*domain.Topic, error) {
	t, err := s.api.Topic(ctx, topicID)
	if err != nil {
		s.logger.Warn("load topic failed", zap.Int64(logger.FieldTopicID, topicID), zap.Error(err))
		return nil, err
	}
	return t, nil
}

func (s *forumService) LoadRootComments(ctx context.Context, topicID int64, page dto.PageRequest) error {
	res, err := s.api.RootComments(ctx, topicID, s.withPage(page))
	if err != nil {
		s.logger.Warn("load root comments failed", zap.Int64(logger.FieldTopicID, topicID), zap.Error(err))
		return err
	}
	s.mu.Lock()
	s.state.TopicID = topicID
	s.state.RootComments = res
	s.mu.Unlock()
	return nil
}

func (s *forumService) LoadReplies(ctx context.Context, rootID int64, page dto.PageRequest) error {
	res, err := s.api.Replies(ctx, rootID, s.withPage(page))
	if err != nil {
		s.logger.Warn("load replies failed", zap.Int64(logger.FieldCommentID, rootID), zap.Error(err))
		return err
	}
	s.mu.Lock()
	s.state.ReplyRootID = rootID
	s.state.Replies = res
	s.mu.Unlock()
	return nil
}

func (s *forumService) CommentDetail(ctx context.Context, commentID int64) (*domain.CommentDetail, error) {
	return s.api.CommentDetail(ctx, commentID)
}

const maxThreadDepth = 64

func (s *forumService) RootOf(ctx context.Context, commentID int64) (int64, error) {
	id := commentID
	for range maxThreadDepth {
		d, err := s.api.CommentDetail(ctx, id)
		if err != nil {
			return 0, err
		}
		if d.Comment == nil {
			return 0, code.ErrorServer.WithDetails("comment not found")
		}
		if d.Comment.IsRoot() {
			return d.Comment.ID, nil
		}
		id = *d.Comment.ParentID
	}
	return 0, code.ErrorServer.WithDetails("comment thread too deep")
}

func (s *forumService) CreateTopic(ctx context.Context, req *dto.CreateTopicRequest, attachments []dto.FilePart) (*domain.Topic, error) {
	sess, err := s.session.RequireLogin()
	if err != nil {
		return nil, err
	}
	if err := validate(s.validator, req); err != nil {
		return nil, err
	}

	t, err := s.api.CreateTopic(ctx, sess.UserID, req, attachments)
	if err != nil {
		s.logger.Warn("create topic failed", zap.Int64(logger.FieldForumNo, req.ForumNo), zap.Error(err))
		return nil, err
	}
	return t, nil
}

func (s *forumService) PostComment(ctx context.Context, req *dto.CreateCommentRequest, rootID *int64, attachments []dto.FilePart) (*domain.Comment, error) {
	sess, err := s.session.RequireLogin()
	if err != nil {
		return nil, err
	}
	if err := validate(s.validator, req); err != nil {
		return nil, err
	}

	c, err := s.api.CreateComment(ctx, sess.UserID, req, attachments)
	if err != nil {
		s.logger.Warn("post comment failed", zap.Int64(logger.FieldTopicID, req.TopicID), zap.Error(err))
		return nil, err
	}

	reloadErr := s.LoadRootComments(ctx, req.TopicID, s.defaultPage())
	if rootID != nil {
		reloadErr = joinErrs(reloadErr, s.LoadReplies(ctx, *rootID, s.defaultPage()))
	}
	return c, reloadErr
}

func (s *forumService) ToggleCommentLike(ctx context.Context, commentID int64, currentlyLiked bool, topicID int64) error {
	var err error
	if currentlyLiked {
		err = s.api.UnlikeComment(ctx, commentID)
	} else {
		err = s.api.LikeComment(ctx, commentID)
	}
	if err != nil {
		s.logger.Warn("toggle like failed", zap.Int64(logger.FieldCommentID, commentID), zap.Error(err))
	}
	return joinErrs(err, s.LoadRootComments(ctx, topicID, s.defaultPage()))
}

func (s *forumService) DeleteTopic(ctx context.Context, topicID, forumNo int64) error {
	sess, err := s.session.RequireLogin()
	if err != nil {
		return err
	}
	if err := s.api.DeleteTopic(ctx, topicID, sess.UserID); err != nil {
		s.logger.Warn("delete topic failed", zap.Int64(logger.FieldTopicID, topicID), zap.Error(err))
		return err
	}
	return s.LoadTopics(ctx, forumNo)
}

func (s *forumService) RemoveComment(ctx context.Context, commentID, topicID int64, rootID *int64) error {
	sess, err := s.session.RequireLogin()
	if err != nil {
		return err
	}
	if err := s.api.DeleteComment(ctx, commentID, sess.UserID); err != nil {
		s.logger.Warn("delete comment failed", zap.Int64(logger.FieldCommentID, commentID), zap.Error(err))
		return err
	}
	reloadErr := s.LoadRootComments(ctx, topicID, s.defaultPage())
	if rootID != nil {
		reloadErr = joinErrs(reloadErr, s.LoadReplies(ctx, *rootID, s.defaultPage()))
	}
	return reloadErr
}

// DownloadAttachment fetches by the stored name (last segment of accessUrl)
// and saves under the original name.
func (s *forumService) DownloadAttachment(ctx context.Context, attachment *domain.Attachment, forumNo int64) (string, error) {
	if attachment == nil {
		return "", code.ErrorInvalidParams
	}
	stored := attachment.StoredName()
	if stored == "" {
		return "", code.ErrorInvalidParams.WithDetails("attachment has no access url")
	}
	name := attachment.OriginalName
	if name == "" {
		name = stored
	}
	return s.downloader.save(ctx, name, func(ctx context.Context) (*api.Stream, error) {
		return s.api.DownloadAttachment(ctx, forumNo, stored)
	})
}

func (s *forumService) State() ForumState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := s.state
	st.Topics = append([]*domain.Topic{}, s.state.Topics...)
	return st
}
