package service

import (
	"context"
	"io"
	"time"

	"lawconnect/internal/entity"
	"lawconnect/internal/repository"

	"github.com/google/uuid"
)

// memoryStore is an in-memory repository.Store for unit tests. Atomic runs
// the fn against the same store; transactional rollback is the database's
// job and is not simulated here.
type memoryStore struct {
	users     []*entity.User
	customers []*entity.CustomerProfile
	lawyers   []*entity.LawyerProfile
	tokens    []*entity.VerificationToken
	questions []*entity.Question
	sessions  []*entity.Session
	audits    []*entity.AuditLog

	now func() time.Time
}

func newMemoryStore() *memoryStore {
	return &memoryStore{now: time.Now}
}

func (s *memoryStore) Users() repository.UserRepository                           { return fakeUserRepo{s} }
func (s *memoryStore) CustomerProfiles() repository.CustomerProfileRepository     { return fakeCustomerRepo{s} }
func (s *memoryStore) LawyerProfiles() repository.LawyerProfileRepository         { return fakeLawyerRepo{s} }
func (s *memoryStore) VerificationTokens() repository.VerificationTokenRepository { return fakeTokenRepo{s} }
func (s *memoryStore) Questions() repository.QuestionRepository                   { return fakeQuestionRepo{s} }
func (s *memoryStore) Sessions() repository.SessionRepository                     { return fakeSessionRepo{s} }
func (s *memoryStore) AuditLogs() repository.AuditLogRepository                   { return fakeAuditRepo{s} }

func (s *memoryStore) Atomic(ctx context.Context, fn func(repository.Store) error) error {
	return fn(s)
}

type fakeUserRepo struct{ s *memoryStore }

func (r fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = r.s.now()
	r.s.users = append(r.s.users, user)
	return nil
}

func (r fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	for _, user := range r.s.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, nil
}

func (r fakeUserRepo) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	for _, user := range r.s.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, nil
}

func (r fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, user := range r.s.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, nil
}

func (r fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	for i, existing := range r.s.users {
		if existing.ID == user.ID {
			r.s.users[i] = user
			return nil
		}
	}
	return nil
}

func (r fakeUserRepo) Activate(ctx context.Context, userID uuid.UUID) error {
	for _, user := range r.s.users {
		if user.ID == userID {
			user.IsActive = true
		}
	}
	return nil
}

type fakeCustomerRepo struct{ s *memoryStore }

func (r fakeCustomerRepo) Create(ctx context.Context, profile *entity.CustomerProfile) error {
	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}
	r.s.customers = append(r.s.customers, profile)
	return nil
}

func (r fakeCustomerRepo) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.CustomerProfile, error) {
	for _, profile := range r.s.customers {
		if profile.UserID == userID {
			return profile, nil
		}
	}
	return nil, nil
}

type fakeLawyerRepo struct{ s *memoryStore }

func (r fakeLawyerRepo) Create(ctx context.Context, profile *entity.LawyerProfile) error {
	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}
	profile.CreatedAt = r.s.now()
	r.s.lawyers = append(r.s.lawyers, profile)
	return nil
}

func (r fakeLawyerRepo) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.LawyerProfile, error) {
	for _, profile := range r.s.lawyers {
		if profile.UserID == userID {
			return profile, nil
		}
	}
	return nil, nil
}

func (r fakeLawyerRepo) Update(ctx context.Context, profile *entity.LawyerProfile) error {
	for i, existing := range r.s.lawyers {
		if existing.ID == profile.ID {
			r.s.lawyers[i] = profile
			return nil
		}
	}
	return nil
}

func (r fakeLawyerRepo) ListApproved(ctx context.Context, limit int) ([]entity.LawyerProfile, error) {
	var approved []entity.LawyerProfile
	for _, profile := range r.s.lawyers {
		if profile.Approved {
			approved = append(approved, *profile)
		}
		if limit > 0 && len(approved) == limit {
			break
		}
	}
	return approved, nil
}

type fakeTokenRepo struct{ s *memoryStore }

func (r fakeTokenRepo) Create(ctx context.Context, token *entity.VerificationToken) error {
	if token.ID == uuid.Nil {
		token.ID = uuid.New()
	}
	if token.CreatedAt.IsZero() {
		token.CreatedAt = r.s.now()
	}
	r.s.tokens = append(r.s.tokens, token)
	return nil
}

func (r fakeTokenRepo) FindByHash(ctx context.Context, tokenHash string, purpose entity.TokenPurpose) (*entity.VerificationToken, error) {
	for _, token := range r.s.tokens {
		if token.TokenHash == tokenHash && token.Purpose == purpose {
			return token, nil
		}
	}
	return nil, nil
}

func (r fakeTokenRepo) Delete(ctx context.Context, id uuid.UUID) error {
	kept := r.s.tokens[:0]
	for _, token := range r.s.tokens {
		if token.ID != id {
			kept = append(kept, token)
		}
	}
	r.s.tokens = kept
	return nil
}

func (r fakeTokenRepo) CountByUser(ctx context.Context, userID uuid.UUID, purpose entity.TokenPurpose) (int64, error) {
	var count int64
	for _, token := range r.s.tokens {
		if token.UserID == userID && token.Purpose == purpose {
			count++
		}
	}
	return count, nil
}

type fakeQuestionRepo struct{ s *memoryStore }

func (r fakeQuestionRepo) Create(ctx context.Context, question *entity.Question) error {
	if question.ID == uuid.Nil {
		question.ID = uuid.New()
	}
	question.CreatedAt = r.s.now()
	r.s.questions = append(r.s.questions, question)
	return nil
}

func (r fakeQuestionRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Question, error) {
	for _, question := range r.s.questions {
		if question.ID == id {
			return question, nil
		}
	}
	return nil, nil
}

func (r fakeQuestionRepo) SetAnswer(ctx context.Context, id uuid.UUID, answerText string, answeredByID uuid.UUID) error {
	for _, question := range r.s.questions {
		if question.ID == id {
			byID := answeredByID
			question.AnswerText = answerText
			question.IsAnswered = true
			question.AnsweredByID = &byID
		}
	}
	return nil
}

func (r fakeQuestionRepo) ListAll(ctx context.Context) ([]entity.Question, error) {
	var all []entity.Question
	for _, question := range r.s.questions {
		all = append(all, *question)
	}
	return all, nil
}

func (r fakeQuestionRepo) ListAnswered(ctx context.Context, limit int) ([]entity.Question, error) {
	var answered []entity.Question
	for _, question := range r.s.questions {
		if !question.IsAnswered {
			continue
		}
		answered = append(answered, *question)
		if limit > 0 && len(answered) == limit {
			break
		}
	}
	return answered, nil
}

type fakeSessionRepo struct{ s *memoryStore }

func (r fakeSessionRepo) Create(ctx context.Context, session *entity.Session) error {
	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	r.s.sessions = append(r.s.sessions, session)
	return nil
}

func (r fakeSessionRepo) FindByTokenHash(ctx context.Context, hash string) (*entity.Session, error) {
	for _, session := range r.s.sessions {
		if session.TokenHash == hash && session.RevokedAt == nil && session.ExpiresAt.After(r.s.now()) {
			return session, nil
		}
	}
	return nil, nil
}

func (r fakeSessionRepo) RotateToken(ctx context.Context, sessionID uuid.UUID, newHash string, newExpiry time.Time) error {
	for _, session := range r.s.sessions {
		if session.ID == sessionID {
			session.TokenHash = newHash
			session.ExpiresAt = newExpiry
		}
	}
	return nil
}

func (r fakeSessionRepo) Revoke(ctx context.Context, sessionID uuid.UUID) error {
	now := r.s.now()
	for _, session := range r.s.sessions {
		if session.ID == sessionID {
			session.RevokedAt = &now
		}
	}
	return nil
}

func (r fakeSessionRepo) RevokeAllByUser(ctx context.Context, userID uuid.UUID) error {
	now := r.s.now()
	for _, session := range r.s.sessions {
		if session.UserID == userID && session.RevokedAt == nil {
			session.RevokedAt = &now
		}
	}
	return nil
}

func (r fakeSessionRepo) CleanupExpired(ctx context.Context) error {
	kept := r.s.sessions[:0]
	for _, session := range r.s.sessions {
		if session.ExpiresAt.After(r.s.now()) {
			kept = append(kept, session)
		}
	}
	r.s.sessions = kept
	return nil
}

type fakeAuditRepo struct{ s *memoryStore }

func (r fakeAuditRepo) Log(ctx context.Context, log *entity.AuditLog) error {
	r.s.audits = append(r.s.audits, log)
	return nil
}

// sentEmail records one call to the fake sender.
type sentEmail struct {
	Kind   string
	To     string
	Token  string
	Notice LawyerSignupNotice
}

type fakeEmailSender struct {
	sent      []sentEmail
	verifyErr error
	resetErr  error
	noticeErr error
}

func (f *fakeEmailSender) SendVerificationEmail(ctx context.Context, email string, token string) error {
	if f.verifyErr != nil {
		return f.verifyErr
	}
	f.sent = append(f.sent, sentEmail{Kind: "verify", To: email, Token: token})
	return nil
}

func (f *fakeEmailSender) SendPasswordResetEmail(ctx context.Context, email string, token string) error {
	if f.resetErr != nil {
		return f.resetErr
	}
	f.sent = append(f.sent, sentEmail{Kind: "reset", To: email, Token: token})
	return nil
}

func (f *fakeEmailSender) SendLawyerSignupNotice(ctx context.Context, email string, notice LawyerSignupNotice) error {
	if f.noticeErr != nil {
		return f.noticeErr
	}
	f.sent = append(f.sent, sentEmail{Kind: "notice", To: email, Notice: notice})
	return nil
}

func (f *fakeEmailSender) byKind(kind string) []sentEmail {
	var matched []sentEmail
	for _, email := range f.sent {
		if email.Kind == kind {
			matched = append(matched, email)
		}
	}
	return matched
}

type fakeCertificateStore struct {
	uploadErr error
	uploads   []string
}

func (f *fakeCertificateStore) Upload(ctx context.Context, filename string, file io.Reader) (string, error) {
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	f.uploads = append(f.uploads, filename)
	return "https://files.example/" + filename, nil
}

type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (plainHasher) Verify(hash string, password string) bool {
	return hash == "hashed:"+password
}

type fakeAccessIssuer struct{}

func (fakeAccessIssuer) IssueAccessToken(user entity.User, sessionID uuid.UUID) (string, time.Duration, error) {
	return "access-token", 15 * time.Minute, nil
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }
