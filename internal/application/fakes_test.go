package application

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/revuehub/api/internal/apperr"
	"github.com/revuehub/api/internal/domain/entity"
	repo "github.com/revuehub/api/internal/domain/repository"
)

// In-memory repositories mirroring the Postgres contracts, including the
// error kinds the real implementations return.

type memUserRepo struct {
	users         map[string]*entity.User // by id
	verifications map[string]string       // user id -> code
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[string]*entity.User{}, verifications: map[string]string{}}
}

func (m *memUserRepo) Create(_ context.Context, u *entity.User) error {
	for _, ex := range m.users {
		if ex.Username == u.Username {
			return apperr.Validation("username already taken")
		}
		if ex.Email == u.Email {
			return apperr.Validation("email already registered")
		}
	}
	u.ID = uuid.NewString()
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *memUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	if u, ok := m.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, apperr.NotFound("user")
}

func (m *memUserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperr.NotFound("user")
}

func (m *memUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperr.NotFound("user")
}

func (m *memUserRepo) List(_ context.Context, search string) ([]entity.User, error) {
	out := make([]entity.User, 0)
	for _, u := range m.users {
		if search == "" || strings.Contains(u.Username, search) {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (m *memUserRepo) Update(_ context.Context, u *entity.User) error {
	if _, ok := m.users[u.ID]; !ok {
		return apperr.NotFound("user")
	}
	u.UpdatedAt = time.Now()
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *memUserRepo) Delete(_ context.Context, username string) error {
	for id, u := range m.users {
		if u.Username == username {
			delete(m.users, id)
			return nil
		}
	}
	return apperr.NotFound("user")
}

func (m *memUserRepo) UpsertVerification(_ context.Context, userID, code string) error {
	m.verifications[userID] = code
	return nil
}

func (m *memUserRepo) GetVerification(_ context.Context, userID string) (*entity.EmailVerification, error) {
	code, ok := m.verifications[userID]
	if !ok {
		return nil, apperr.NotFound("verification record")
	}
	return &entity.EmailVerification{UserID: userID, ConfirmationCode: code}, nil
}

type memCategoryRepo struct {
	nextID int64
	items  map[string]*entity.Category // by slug
}

func newMemCategoryRepo() *memCategoryRepo {
	return &memCategoryRepo{items: map[string]*entity.Category{}}
}

func (m *memCategoryRepo) Create(_ context.Context, c *entity.Category) error {
	if _, ok := m.items[c.Slug]; ok {
		return apperr.Validationf("slug %q already in use", c.Slug)
	}
	m.nextID++
	c.ID = m.nextID
	cp := *c
	m.items[c.Slug] = &cp
	return nil
}

func (m *memCategoryRepo) GetBySlug(_ context.Context, slug string) (*entity.Category, error) {
	if c, ok := m.items[slug]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, apperr.NotFound("category")
}

func (m *memCategoryRepo) List(_ context.Context, search string) ([]entity.Category, error) {
	out := make([]entity.Category, 0)
	for _, c := range m.items {
		if search == "" || strings.Contains(c.Name, search) {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (m *memCategoryRepo) DeleteBySlug(_ context.Context, slug string) error {
	if _, ok := m.items[slug]; !ok {
		return apperr.NotFound("category")
	}
	delete(m.items, slug)
	return nil
}

type memGenreRepo struct {
	nextID int64
	items  map[string]*entity.Genre
}

func newMemGenreRepo() *memGenreRepo {
	return &memGenreRepo{items: map[string]*entity.Genre{}}
}

func (m *memGenreRepo) Create(_ context.Context, g *entity.Genre) error {
	if _, ok := m.items[g.Slug]; ok {
		return apperr.Validationf("slug %q already in use", g.Slug)
	}
	m.nextID++
	g.ID = m.nextID
	cp := *g
	m.items[g.Slug] = &cp
	return nil
}

func (m *memGenreRepo) GetBySlug(_ context.Context, slug string) (*entity.Genre, error) {
	if g, ok := m.items[slug]; ok {
		cp := *g
		return &cp, nil
	}
	return nil, apperr.NotFound("genre")
}

func (m *memGenreRepo) List(_ context.Context, search string) ([]entity.Genre, error) {
	out := make([]entity.Genre, 0)
	for _, g := range m.items {
		if search == "" || strings.Contains(g.Name, search) {
			out = append(out, *g)
		}
	}
	return out, nil
}

func (m *memGenreRepo) DeleteBySlug(_ context.Context, slug string) error {
	if _, ok := m.items[slug]; !ok {
		return apperr.NotFound("genre")
	}
	delete(m.items, slug)
	return nil
}

// memTitleRepo derives ratings from its paired review repo, like the SQL AVG
// join in the real implementation.
type memTitleRepo struct {
	nextID  int64
	items   map[int64]*entity.Title
	reviews *memReviewRepo
}

func newMemTitleRepo(reviews *memReviewRepo) *memTitleRepo {
	return &memTitleRepo{items: map[int64]*entity.Title{}, reviews: reviews}
}

func (m *memTitleRepo) rating(titleID int64) *float64 {
	if m.reviews == nil {
		return nil
	}
	var sum, n int
	for _, rv := range m.reviews.items {
		if rv.TitleID == titleID {
			sum += rv.Score
			n++
		}
	}
	if n == 0 {
		return nil
	}
	mean := float64(sum) / float64(n)
	return &mean
}

func (m *memTitleRepo) Create(_ context.Context, t *entity.Title) error {
	m.nextID++
	t.ID = m.nextID
	cp := *t
	m.items[t.ID] = &cp
	return nil
}

func (m *memTitleRepo) GetByID(_ context.Context, id int64) (*entity.Title, error) {
	t, ok := m.items[id]
	if !ok {
		return nil, apperr.NotFound("title")
	}
	cp := *t
	cp.Rating = m.rating(id)
	return &cp, nil
}

func (m *memTitleRepo) List(_ context.Context, f repo.TitleFilter) ([]entity.Title, error) {
	out := make([]entity.Title, 0)
	for _, t := range m.items {
		if f.CategorySlug != "" && (t.Category == nil || t.Category.Slug != f.CategorySlug) {
			continue
		}
		if f.GenreSlug != "" && !hasGenre(t, f.GenreSlug) {
			continue
		}
		if f.Name != "" && !strings.Contains(t.Name, f.Name) {
			continue
		}
		if f.Year != 0 && t.Year != f.Year {
			continue
		}
		cp := *t
		cp.Rating = m.rating(t.ID)
		out = append(out, cp)
	}
	return out, nil
}

func hasGenre(t *entity.Title, slug string) bool {
	for _, g := range t.Genres {
		if g.Slug == slug {
			return true
		}
	}
	return false
}

func (m *memTitleRepo) Update(_ context.Context, t *entity.Title) error {
	if _, ok := m.items[t.ID]; !ok {
		return apperr.NotFound("title")
	}
	cp := *t
	m.items[t.ID] = &cp
	return nil
}

func (m *memTitleRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.items[id]; !ok {
		return apperr.NotFound("title")
	}
	delete(m.items, id)
	return nil
}

type memReviewRepo struct {
	nextID int64
	items  map[int64]*entity.Review
}

func newMemReviewRepo() *memReviewRepo {
	return &memReviewRepo{items: map[int64]*entity.Review{}}
}

func (m *memReviewRepo) Create(_ context.Context, rv *entity.Review) error {
	for _, ex := range m.items {
		if ex.TitleID == rv.TitleID && ex.AuthorID == rv.AuthorID {
			return apperr.Conflict(repo.DuplicateReviewMessage)
		}
	}
	m.nextID++
	rv.ID = m.nextID
	rv.PubDate = time.Now()
	cp := *rv
	m.items[rv.ID] = &cp
	return nil
}

func (m *memReviewRepo) GetByID(_ context.Context, titleID, reviewID int64) (*entity.Review, error) {
	rv, ok := m.items[reviewID]
	if !ok || rv.TitleID != titleID {
		return nil, apperr.NotFound("review")
	}
	cp := *rv
	return &cp, nil
}

func (m *memReviewRepo) ListByTitle(_ context.Context, titleID int64) ([]entity.Review, error) {
	out := make([]entity.Review, 0)
	for _, rv := range m.items {
		if rv.TitleID == titleID {
			out = append(out, *rv)
		}
	}
	return out, nil
}

func (m *memReviewRepo) ExistsByTitleAndAuthor(_ context.Context, titleID int64, authorID string) (bool, error) {
	for _, rv := range m.items {
		if rv.TitleID == titleID && rv.AuthorID == authorID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memReviewRepo) Update(_ context.Context, rv *entity.Review) error {
	if _, ok := m.items[rv.ID]; !ok {
		return apperr.NotFound("review")
	}
	cp := *rv
	m.items[rv.ID] = &cp
	return nil
}

func (m *memReviewRepo) Delete(_ context.Context, titleID, reviewID int64) error {
	rv, ok := m.items[reviewID]
	if !ok || rv.TitleID != titleID {
		return apperr.NotFound("review")
	}
	delete(m.items, reviewID)
	return nil
}

type memCommentRepo struct {
	nextID int64
	items  map[int64]*entity.Comment
}

func newMemCommentRepo() *memCommentRepo {
	return &memCommentRepo{items: map[int64]*entity.Comment{}}
}

func (m *memCommentRepo) Create(_ context.Context, c *entity.Comment) error {
	m.nextID++
	c.ID = m.nextID
	c.PubDate = time.Now()
	cp := *c
	m.items[c.ID] = &cp
	return nil
}

func (m *memCommentRepo) GetByID(_ context.Context, reviewID, commentID int64) (*entity.Comment, error) {
	c, ok := m.items[commentID]
	if !ok || c.ReviewID != reviewID {
		return nil, apperr.NotFound("comment")
	}
	cp := *c
	return &cp, nil
}

func (m *memCommentRepo) ListByReview(_ context.Context, reviewID int64) ([]entity.Comment, error) {
	out := make([]entity.Comment, 0)
	for _, c := range m.items {
		if c.ReviewID == reviewID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (m *memCommentRepo) Update(_ context.Context, c *entity.Comment) error {
	if _, ok := m.items[c.ID]; !ok {
		return apperr.NotFound("comment")
	}
	cp := *c
	m.items[c.ID] = &cp
	return nil
}

func (m *memCommentRepo) Delete(_ context.Context, reviewID, commentID int64) error {
	c, ok := m.items[commentID]
	if !ok || c.ReviewID != reviewID {
		return apperr.NotFound("comment")
	}
	delete(m.items, commentID)
	return nil
}

// fakePublisher records queued email jobs.
type fakePublisher struct {
	jobs []any
	err  error
}

func (p *fakePublisher) PublishJSON(_ context.Context, body any) error {
	if p.err != nil {
		return p.err
	}
	p.jobs = append(p.jobs, body)
	return nil
}

var (
	_ repo.UserRepository     = (*memUserRepo)(nil)
	_ repo.CategoryRepository = (*memCategoryRepo)(nil)
	_ repo.GenreRepository    = (*memGenreRepo)(nil)
	_ repo.TitleRepository    = (*memTitleRepo)(nil)
	_ repo.ReviewRepository   = (*memReviewRepo)(nil)
	_ repo.CommentRepository  = (*memCommentRepo)(nil)
)
