package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"hireflow/internal/ai"
	"hireflow/internal/domain/candidate"
	"hireflow/internal/domain/interview"
	"hireflow/internal/domain/job"
	"hireflow/internal/domain/profile"
	"hireflow/internal/repository"
)

// Fakes shared by the usecase tests. All of them are safe for concurrent use
// because the invitation batch exercises them from worker goroutines.

type fakeCandidateRepo struct {
	mu sync.Mutex

	byID     map[uuid.UUID]candidate.Candidate
	eligible []candidate.Candidate

	findErr      error
	saveErr      error
	setScoreHit  bool
	setScoreErr  error
	markInvited  map[uuid.UUID]bool
	markErr      error
	transitioned []uuid.UUID

	savedProfiles map[uuid.UUID]profile.Profile
	savedScores   map[uuid.UUID]int
}

func newFakeCandidateRepo() *fakeCandidateRepo {
	return &fakeCandidateRepo{
		byID:          map[uuid.UUID]candidate.Candidate{},
		markInvited:   map[uuid.UUID]bool{},
		savedProfiles: map[uuid.UUID]profile.Profile{},
		savedScores:   map[uuid.UUID]int{},
	}
}

func (f *fakeCandidateRepo) put(c candidate.Candidate) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[c.ID] = c
}

func (f *fakeCandidateRepo) FindByID(_ context.Context, id uuid.UUID) (candidate.Candidate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return candidate.Candidate{}, f.findErr
	}
	c, ok := f.byID[id]
	if !ok {
		return candidate.Candidate{}, repository.ErrNotFound
	}
	return c, nil
}

func (f *fakeCandidateRepo) ListByJob(context.Context, uuid.UUID, int, int) ([]candidate.Candidate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.eligible, nil
}

func (f *fakeCandidateRepo) ListEligible(_ context.Context, _ uuid.UUID, limit int) ([]candidate.Candidate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if limit > len(f.eligible) {
		limit = len(f.eligible)
	}
	out := make([]candidate.Candidate, limit)
	copy(out, f.eligible[:limit])
	return out, nil
}

func (f *fakeCandidateRepo) SaveProfile(_ context.Context, id uuid.UUID, p profile.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	if _, ok := f.byID[id]; !ok {
		return repository.ErrNotFound
	}
	f.savedProfiles[id] = p
	c := f.byID[id]
	c.Profile = &p
	f.byID[id] = c
	return nil
}

func (f *fakeCandidateRepo) SetMatchScore(_ context.Context, id uuid.UUID, score int, rationale string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.setScoreErr != nil {
		return false, f.setScoreErr
	}
	c, ok := f.byID[id]
	if !ok || c.MatchScore != nil {
		return false, nil
	}
	c.MatchScore = &score
	c.MatchRationale = &rationale
	f.byID[id] = c
	f.savedScores[id] = score
	f.setScoreHit = true
	return true, nil
}

func (f *fakeCandidateRepo) MarkInvited(_ context.Context, id, interviewID uuid.UUID, invitedAt time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.markErr != nil {
		return false, f.markErr
	}
	c, ok := f.byID[id]
	if !ok || c.Status != candidate.StatusApplied {
		return false, nil
	}
	c.Status = candidate.StatusInvited
	c.InterviewID = &interviewID
	c.InvitedAt = &invitedAt
	f.byID[id] = c
	f.markInvited[id] = true
	return true, nil
}

func (f *fakeCandidateRepo) TransitionStatus(_ context.Context, id uuid.UUID, from, to candidate.Status) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.byID[id]
	if !ok || c.Status != from || !from.CanTransition(to) {
		return false, nil
	}
	c.Status = to
	f.byID[id] = c
	f.transitioned = append(f.transitioned, id)
	return true, nil
}

type fakeJobRepo struct {
	jobs map[uuid.UUID]job.Job
	err  error
}

func newFakeJobRepo(jobs ...job.Job) *fakeJobRepo {
	m := map[uuid.UUID]job.Job{}
	for _, j := range jobs {
		m[j.ID] = j
	}
	return &fakeJobRepo{jobs: m}
}

func (f *fakeJobRepo) FindByID(_ context.Context, id uuid.UUID) (job.Job, error) {
	if f.err != nil {
		return job.Job{}, f.err
	}
	j, ok := f.jobs[id]
	if !ok {
		return job.Job{}, repository.ErrNotFound
	}
	return j, nil
}

func (f *fakeJobRepo) ExistsByID(_ context.Context, id uuid.UUID) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	_, ok := f.jobs[id]
	return ok, nil
}

func (f *fakeJobRepo) ListActive(context.Context, int, int) ([]job.Job, error) {
	out := make([]job.Job, 0, len(f.jobs))
	for _, j := range f.jobs {
		out = append(out, j)
	}
	return out, nil
}

type fakeInterviewRepo struct {
	mu sync.Mutex

	byID      map[uuid.UUID]interview.Interview
	questions map[uuid.UUID][]interview.Question

	createErr     error
	consumeID     uuid.UUID
	consumeErr    error
	created       []interview.Interview
	createdTokens []interview.AssessmentToken
}

func newFakeInterviewRepo() *fakeInterviewRepo {
	return &fakeInterviewRepo{
		byID:      map[uuid.UUID]interview.Interview{},
		questions: map[uuid.UUID][]interview.Question{},
	}
}

func (f *fakeInterviewRepo) put(iv interview.Interview, prompts ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[iv.ID] = iv
	qs := make([]interview.Question, 0, len(prompts))
	for i, p := range prompts {
		qs = append(qs, interview.Question{ID: uuid.New(), InterviewID: iv.ID, Ordinal: i, Prompt: p})
	}
	f.questions[iv.ID] = qs
}

func (f *fakeInterviewRepo) FindByID(_ context.Context, id uuid.UUID) (interview.Interview, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	iv, ok := f.byID[id]
	if !ok {
		return interview.Interview{}, repository.ErrNotFound
	}
	return iv, nil
}

func (f *fakeInterviewRepo) CreateWithQuestions(_ context.Context, iv interview.Interview, prompts []string, token interview.AssessmentToken) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.byID[iv.ID] = iv
	qs := make([]interview.Question, 0, len(prompts))
	for i, p := range prompts {
		qs = append(qs, interview.Question{ID: uuid.New(), InterviewID: iv.ID, Ordinal: i, Prompt: p})
	}
	f.questions[iv.ID] = qs
	f.created = append(f.created, iv)
	f.createdTokens = append(f.createdTokens, token)
	return nil
}

func (f *fakeInterviewRepo) ConsumeToken(context.Context, string, time.Time) (uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.consumeErr != nil {
		return f.consumeID, f.consumeErr
	}
	return f.consumeID, nil
}

func (f *fakeInterviewRepo) TransitionStatus(_ context.Context, id uuid.UUID, from, to interview.Status, at time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	iv, ok := f.byID[id]
	if !ok || iv.Status != from || !from.CanTransition(to) {
		return false, nil
	}
	iv.Status = to
	switch to {
	case interview.StatusActive:
		iv.StartedAt = &at
	case interview.StatusCompleted:
		iv.CompletedAt = &at
	}
	f.byID[id] = iv
	return true, nil
}

func (f *fakeInterviewRepo) ListQuestions(_ context.Context, interviewID uuid.UUID) ([]interview.Question, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.questions[interviewID], nil
}

type fakeResponseRepo struct {
	mu        sync.Mutex
	responses map[uuid.UUID]map[int]interview.Response
	insertErr error
}

func newFakeResponseRepo() *fakeResponseRepo {
	return &fakeResponseRepo{responses: map[uuid.UUID]map[int]interview.Response{}}
}

func (f *fakeResponseRepo) Insert(_ context.Context, resp interview.Response) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return false, f.insertErr
	}
	m, ok := f.responses[resp.InterviewID]
	if !ok {
		m = map[int]interview.Response{}
		f.responses[resp.InterviewID] = m
	}
	if _, exists := m[resp.QuestionIndex]; exists {
		return false, nil
	}
	m[resp.QuestionIndex] = resp
	return true, nil
}

func (f *fakeResponseRepo) ListByInterview(_ context.Context, interviewID uuid.UUID) ([]interview.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m := f.responses[interviewID]
	out := make([]interview.Response, 0, len(m))
	for _, r := range m {
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeResponseRepo) CountByInterview(_ context.Context, interviewID uuid.UUID) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.responses[interviewID]), nil
}

type fakeEvaluationRepo struct {
	mu        sync.Mutex
	byIv      map[uuid.UUID]interview.Scorecard
	upsertErr error
}

func newFakeEvaluationRepo() *fakeEvaluationRepo {
	return &fakeEvaluationRepo{byIv: map[uuid.UUID]interview.Scorecard{}}
}

func (f *fakeEvaluationRepo) Upsert(_ context.Context, sc interview.Scorecard) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.byIv[sc.InterviewID] = sc
	return nil
}

func (f *fakeEvaluationRepo) FindByInterview(_ context.Context, interviewID uuid.UUID) (interview.Scorecard, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	sc, ok := f.byIv[interviewID]
	if !ok {
		return interview.Scorecard{}, repository.ErrNotFound
	}
	return sc, nil
}

type fakeExtractor struct {
	profile profile.Profile
	err     error
	gotText string
}

func (f *fakeExtractor) ExtractProfile(_ context.Context, resumeText string) (profile.Profile, error) {
	f.gotText = resumeText
	if f.err != nil {
		return profile.Profile{}, f.err
	}
	return f.profile, nil
}

type fakeAdjuster struct {
	delta     int
	rationale string
	err       error
}

func (f *fakeAdjuster) AdjustScore(context.Context, profile.Profile, job.Job, int) (int, string, error) {
	if f.err != nil {
		return 0, "", f.err
	}
	return f.delta, f.rationale, nil
}

type fakeQuestionGen struct {
	questions []string
	err       error
}

func (f *fakeQuestionGen) GenerateQuestions(context.Context, job.Job, int) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.questions, nil
}

type fakeGrader struct {
	result ai.GradeResult
	err    error
	calls  int
}

func (f *fakeGrader) GradeResponses(context.Context, job.Job, []interview.Question, []interview.Response) (ai.GradeResult, error) {
	f.calls++
	if f.err != nil {
		return ai.GradeResult{}, f.err
	}
	return f.result, nil
}

type fakeNotifier struct {
	mu      sync.Mutex
	sent    []string
	failFor map[string]bool
	err     error
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{failFor: map[string]bool{}}
}

func (f *fakeNotifier) Send(_ context.Context, _, recipient string, _ map[string]any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if f.failFor[recipient] {
		return errSendFailed
	}
	f.sent = append(f.sent, recipient)
	return nil
}

var errSendFailed = errNotifier("send failed")

type errNotifier string

func (e errNotifier) Error() string { return string(e) }
