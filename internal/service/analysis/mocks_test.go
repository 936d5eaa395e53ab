package analysis

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/reading-copilot/internal/adapter/cache"
	ai "github.com/heartmarshall/reading-copilot/internal/analysis"
	"github.com/heartmarshall/reading-copilot/internal/domain"
)

// Ensure, that completerMock does implement completer.
var _ completer = &completerMock{}

// completerMock is a mock implementation of completer.
type completerMock struct {
	// CompleteFunc mocks the Complete method.
	CompleteFunc func(ctx context.Context, system string, user string) (string, error)

	// StreamFunc mocks the Stream method.
	StreamFunc func(ctx context.Context, system string, user string) (<-chan ai.Chunk, error)

	// calls tracks calls to the methods.
	calls struct {
		// Complete holds details about calls to the Complete method.
		Complete []struct {
			// Ctx is the ctx argument value.
			Ctx context.Context
			// System is the system argument value.
			System string
			// User is the user argument value.
			User string
		}
		// Stream holds details about calls to the Stream method.
		Stream []struct {
			// Ctx is the ctx argument value.
			Ctx context.Context
			// System is the system argument value.
			System string
			// User is the user argument value.
			User string
		}
	}
	lockComplete sync.RWMutex
	lockStream   sync.RWMutex
}

// Complete calls CompleteFunc.
func (mock *completerMock) Complete(ctx context.Context, system string, user string) (string, error) {
	if mock.CompleteFunc == nil {
		panic("completerMock.CompleteFunc: method is nil but completer.Complete was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		System string
		User   string
	}{
		Ctx:    ctx,
		System: system,
		User:   user,
	}
	mock.lockComplete.Lock()
	mock.calls.Complete = append(mock.calls.Complete, callInfo)
	mock.lockComplete.Unlock()
	return mock.CompleteFunc(ctx, system, user)
}

// CompleteCalls gets all the calls that were made to Complete.
// Check the length with:
//
//	len(mockedCompleter.CompleteCalls())
func (mock *completerMock) CompleteCalls() []struct {
	Ctx    context.Context
	System string
	User   string
} {
	var calls []struct {
		Ctx    context.Context
		System string
		User   string
	}
	mock.lockComplete.RLock()
	calls = mock.calls.Complete
	mock.lockComplete.RUnlock()
	return calls
}

// Stream calls StreamFunc.
func (mock *completerMock) Stream(ctx context.Context, system string, user string) (<-chan ai.Chunk, error) {
	if mock.StreamFunc == nil {
		panic("completerMock.StreamFunc: method is nil but completer.Stream was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		System string
		User   string
	}{
		Ctx:    ctx,
		System: system,
		User:   user,
	}
	mock.lockStream.Lock()
	mock.calls.Stream = append(mock.calls.Stream, callInfo)
	mock.lockStream.Unlock()
	return mock.StreamFunc(ctx, system, user)
}

// StreamCalls gets all the calls that were made to Stream.
// Check the length with:
//
//	len(mockedCompleter.StreamCalls())
func (mock *completerMock) StreamCalls() []struct {
	Ctx    context.Context
	System string
	User   string
} {
	var calls []struct {
		Ctx    context.Context
		System string
		User   string
	}
	mock.lockStream.RLock()
	calls = mock.calls.Stream
	mock.lockStream.RUnlock()
	return calls
}

// Ensure, that textRepoMock does implement textRepo.
var _ textRepo = &textRepoMock{}

// textRepoMock is a mock implementation of textRepo.
type textRepoMock struct {
	// GetByIDFunc mocks the GetByID method.
	GetByIDFunc func(ctx context.Context, userID uuid.UUID, id int64) (*domain.Text, error)

	// calls tracks calls to the methods.
	calls struct {
		// GetByID holds details about calls to the GetByID method.
		GetByID []struct {
			// Ctx is the ctx argument value.
			Ctx context.Context
			// UserID is the userID argument value.
			UserID uuid.UUID
			// ID is the id argument value.
			ID int64
		}
	}
	lockGetByID sync.RWMutex
}

// GetByID calls GetByIDFunc.
func (mock *textRepoMock) GetByID(ctx context.Context, userID uuid.UUID, id int64) (*domain.Text, error) {
	if mock.GetByIDFunc == nil {
		panic("textRepoMock.GetByIDFunc: method is nil but textRepo.GetByID was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
		ID     int64
	}{
		Ctx:    ctx,
		UserID: userID,
		ID:     id,
	}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, userID, id)
}

// GetByIDCalls gets all the calls that were made to GetByID.
// Check the length with:
//
//	len(mockedTextRepo.GetByIDCalls())
func (mock *textRepoMock) GetByIDCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
	ID     int64
} {
	var calls []struct {
		Ctx    context.Context
		UserID uuid.UUID
		ID     int64
	}
	mock.lockGetByID.RLock()
	calls = mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

// Ensure, that sentenceRepoMock does implement sentenceRepo.
var _ sentenceRepo = &sentenceRepoMock{}

// sentenceRepoMock is a mock implementation of sentenceRepo.
type sentenceRepoMock struct {
	// GetByIDFunc mocks the GetByID method.
	GetByIDFunc func(ctx context.Context, userID uuid.UUID, id int64) (*domain.Sentence, error)

	// ListByTextFunc mocks the ListByText method.
	ListByTextFunc func(ctx context.Context, textID int64) ([]domain.Sentence, error)

	// UpdateFunc mocks the Update method.
	UpdateFunc func(ctx context.Context, userID uuid.UUID, id int64, p domain.SentencePatch) (*domain.Sentence, error)

	// calls tracks calls to the methods.
	calls struct {
		// GetByID holds details about calls to the GetByID method.
		GetByID []struct {
			// Ctx is the ctx argument value.
			Ctx context.Context
			// UserID is the userID argument value.
			UserID uuid.UUID
			// ID is the id argument value.
			ID int64
		}
		// ListByText holds details about calls to the ListByText method.
		ListByText []struct {
			// Ctx is the ctx argument value.
			Ctx context.Context
			// TextID is the textID argument value.
			TextID int64
		}
		// Update holds details about calls to the Update method.
		Update []struct {
			// Ctx is the ctx argument value.
			Ctx context.Context
			// UserID is the userID argument value.
			UserID uuid.UUID
			// ID is the id argument value.
			ID int64
			// P is the p argument value.
			P domain.SentencePatch
		}
	}
	lockGetByID    sync.RWMutex
	lockListByText sync.RWMutex
	lockUpdate     sync.RWMutex
}

// GetByID calls GetByIDFunc.
func (mock *sentenceRepoMock) GetByID(ctx context.Context, userID uuid.UUID, id int64) (*domain.Sentence, error) {
	if mock.GetByIDFunc == nil {
		panic("sentenceRepoMock.GetByIDFunc: method is nil but sentenceRepo.GetByID was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
		ID     int64
	}{
		Ctx:    ctx,
		UserID: userID,
		ID:     id,
	}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, userID, id)
}

// GetByIDCalls gets all the calls that were made to GetByID.
// Check the length with:
//
//	len(mockedSentenceRepo.GetByIDCalls())
func (mock *sentenceRepoMock) GetByIDCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
	ID     int64
} {
	var calls []struct {
		Ctx    context.Context
		UserID uuid.UUID
		ID     int64
	}
	mock.lockGetByID.RLock()
	calls = mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

// ListByText calls ListByTextFunc.
func (mock *sentenceRepoMock) ListByText(ctx context.Context, textID int64) ([]domain.Sentence, error) {
	if mock.ListByTextFunc == nil {
		panic("sentenceRepoMock.ListByTextFunc: method is nil but sentenceRepo.ListByText was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		TextID int64
	}{
		Ctx:    ctx,
		TextID: textID,
	}
	mock.lockListByText.Lock()
	mock.calls.ListByText = append(mock.calls.ListByText, callInfo)
	mock.lockListByText.Unlock()
	return mock.ListByTextFunc(ctx, textID)
}

// ListByTextCalls gets all the calls that were made to ListByText.
// Check the length with:
//
//	len(mockedSentenceRepo.ListByTextCalls())
func (mock *sentenceRepoMock) ListByTextCalls() []struct {
	Ctx    context.Context
	TextID int64
} {
	var calls []struct {
		Ctx    context.Context
		TextID int64
	}
	mock.lockListByText.RLock()
	calls = mock.calls.ListByText
	mock.lockListByText.RUnlock()
	return calls
}

// Update calls UpdateFunc.
func (mock *sentenceRepoMock) Update(ctx context.Context, userID uuid.UUID, id int64, p domain.SentencePatch) (*domain.Sentence, error) {
	if mock.UpdateFunc == nil {
		panic("sentenceRepoMock.UpdateFunc: method is nil but sentenceRepo.Update was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
		ID     int64
		P      domain.SentencePatch
	}{
		Ctx:    ctx,
		UserID: userID,
		ID:     id,
		P:      p,
	}
	mock.lockUpdate.Lock()
	mock.calls.Update = append(mock.calls.Update, callInfo)
	mock.lockUpdate.Unlock()
	return mock.UpdateFunc(ctx, userID, id, p)
}

// UpdateCalls gets all the calls that were made to Update.
// Check the length with:
//
//	len(mockedSentenceRepo.UpdateCalls())
func (mock *sentenceRepoMock) UpdateCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
	ID     int64
	P      domain.SentencePatch
} {
	var calls []struct {
		Ctx    context.Context
		UserID uuid.UUID
		ID     int64
		P      domain.SentencePatch
	}
	mock.lockUpdate.RLock()
	calls = mock.calls.Update
	mock.lockUpdate.RUnlock()
	return calls
}

// Ensure, that analysisCacheMock does implement analysisCache.
var _ analysisCache = &analysisCacheMock{}

// analysisCacheMock is a mock implementation of analysisCache.
type analysisCacheMock struct {
	// GetFunc mocks the Get method.
	GetFunc func(ctx context.Context, content string) (cache.Entry, bool, error)

	// SetFunc mocks the Set method.
	SetFunc func(ctx context.Context, content string, e cache.Entry) error

	// calls tracks calls to the methods.
	calls struct {
		// Get holds details about calls to the Get method.
		Get []struct {
			// Ctx is the ctx argument value.
			Ctx context.Context
			// Content is the content argument value.
			Content string
		}
		// Set holds details about calls to the Set method.
		Set []struct {
			// Ctx is the ctx argument value.
			Ctx context.Context
			// Content is the content argument value.
			Content string
			// E is the e argument value.
			E cache.Entry
		}
	}
	lockGet sync.RWMutex
	lockSet sync.RWMutex
}

// Get calls GetFunc.
func (mock *analysisCacheMock) Get(ctx context.Context, content string) (cache.Entry, bool, error) {
	if mock.GetFunc == nil {
		panic("analysisCacheMock.GetFunc: method is nil but analysisCache.Get was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		Content string
	}{
		Ctx:     ctx,
		Content: content,
	}
	mock.lockGet.Lock()
	mock.calls.Get = append(mock.calls.Get, callInfo)
	mock.lockGet.Unlock()
	return mock.GetFunc(ctx, content)
}

// GetCalls gets all the calls that were made to Get.
// Check the length with:
//
//	len(mockedAnalysisCache.GetCalls())
func (mock *analysisCacheMock) GetCalls() []struct {
	Ctx     context.Context
	Content string
} {
	var calls []struct {
		Ctx     context.Context
		Content string
	}
	mock.lockGet.RLock()
	calls = mock.calls.Get
	mock.lockGet.RUnlock()
	return calls
}

// Set calls SetFunc.
func (mock *analysisCacheMock) Set(ctx context.Context, content string, e cache.Entry) error {
	if mock.SetFunc == nil {
		panic("analysisCacheMock.SetFunc: method is nil but analysisCache.Set was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		Content string
		E       cache.Entry
	}{
		Ctx:     ctx,
		Content: content,
		E:       e,
	}
	mock.lockSet.Lock()
	mock.calls.Set = append(mock.calls.Set, callInfo)
	mock.lockSet.Unlock()
	return mock.SetFunc(ctx, content, e)
}

// SetCalls gets all the calls that were made to Set.
// Check the length with:
//
//	len(mockedAnalysisCache.SetCalls())
func (mock *analysisCacheMock) SetCalls() []struct {
	Ctx     context.Context
	Content string
	E       cache.Entry
} {
	var calls []struct {
		Ctx     context.Context
		Content string
		E       cache.Entry
	}
	mock.lockSet.RLock()
	calls = mock.calls.Set
	mock.lockSet.RUnlock()
	return calls
}

// Ensure, that limiterMock does implement limiter.
var _ limiter = &limiterMock{}

// limiterMock is a mock implementation of limiter.
type limiterMock struct {
	// AllowFunc mocks the Allow method.
	AllowFunc func(key string) error

	// calls tracks calls to the methods.
	calls struct {
		// Allow holds details about calls to the Allow method.
		Allow []struct {
			// Key is the key argument value.
			Key string
		}
	}
	lockAllow sync.RWMutex
}

// Allow calls AllowFunc.
func (mock *limiterMock) Allow(key string) error {
	if mock.AllowFunc == nil {
		panic("limiterMock.AllowFunc: method is nil but limiter.Allow was just called")
	}
	callInfo := struct {
		Key string
	}{
		Key: key,
	}
	mock.lockAllow.Lock()
	mock.calls.Allow = append(mock.calls.Allow, callInfo)
	mock.lockAllow.Unlock()
	return mock.AllowFunc(key)
}

// AllowCalls gets all the calls that were made to Allow.
// Check the length with:
//
//	len(mockedLimiter.AllowCalls())
func (mock *limiterMock) AllowCalls() []struct {
	Key string
} {
	var calls []struct {
		Key string
	}
	mock.lockAllow.RLock()
	calls = mock.calls.Allow
	mock.lockAllow.RUnlock()
	return calls
}

// Ensure, that recorderMock does implement recorder.
var _ recorder = &recorderMock{}

// recorderMock is a mock implementation of recorder.
type recorderMock struct {
	// RecordAnalysisFunc mocks the RecordAnalysis method.
	RecordAnalysisFunc func(ctx context.Context, status string, elapsed time.Duration)

	// RecordChatFunc mocks the RecordChat method.
	RecordChatFunc func(ctx context.Context, mode string)

	// calls tracks calls to the methods.
	calls struct {
		// RecordAnalysis holds details about calls to the RecordAnalysis method.
		RecordAnalysis []struct {
			// Ctx is the ctx argument value.
			Ctx context.Context
			// Status is the status argument value.
			Status string
			// Elapsed is the elapsed argument value.
			Elapsed time.Duration
		}
		// RecordChat holds details about calls to the RecordChat method.
		RecordChat []struct {
			// Ctx is the ctx argument value.
			Ctx context.Context
			// Mode is the mode argument value.
			Mode string
		}
	}
	lockRecordAnalysis sync.RWMutex
	lockRecordChat     sync.RWMutex
}

// RecordAnalysis calls RecordAnalysisFunc.
func (mock *recorderMock) RecordAnalysis(ctx context.Context, status string, elapsed time.Duration) {
	if mock.RecordAnalysisFunc == nil {
		panic("recorderMock.RecordAnalysisFunc: method is nil but recorder.RecordAnalysis was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		Status  string
		Elapsed time.Duration
	}{
		Ctx:     ctx,
		Status:  status,
		Elapsed: elapsed,
	}
	mock.lockRecordAnalysis.Lock()
	mock.calls.RecordAnalysis = append(mock.calls.RecordAnalysis, callInfo)
	mock.lockRecordAnalysis.Unlock()
	mock.RecordAnalysisFunc(ctx, status, elapsed)
}

// RecordAnalysisCalls gets all the calls that were made to RecordAnalysis.
// Check the length with:
//
//	len(mockedRecorder.RecordAnalysisCalls())
func (mock *recorderMock) RecordAnalysisCalls() []struct {
	Ctx     context.Context
	Status  string
	Elapsed time.Duration
} {
	var calls []struct {
		Ctx     context.Context
		Status  string
		Elapsed time.Duration
	}
	mock.lockRecordAnalysis.RLock()
	calls = mock.calls.RecordAnalysis
	mock.lockRecordAnalysis.RUnlock()
	return calls
}

// RecordChat calls RecordChatFunc.
func (mock *recorderMock) RecordChat(ctx context.Context, mode string) {
	if mock.RecordChatFunc == nil {
		panic("recorderMock.RecordChatFunc: method is nil but recorder.RecordChat was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Mode string
	}{
		Ctx:  ctx,
		Mode: mode,
	}
	mock.lockRecordChat.Lock()
	mock.calls.RecordChat = append(mock.calls.RecordChat, callInfo)
	mock.lockRecordChat.Unlock()
	mock.RecordChatFunc(ctx, mode)
}

// RecordChatCalls gets all the calls that were made to RecordChat.
// Check the length with:
//
//	len(mockedRecorder.RecordChatCalls())
func (mock *recorderMock) RecordChatCalls() []struct {
	Ctx  context.Context
	Mode string
} {
	var calls []struct {
		Ctx  context.Context
		Mode string
	}
	mock.lockRecordChat.RLock()
	calls = mock.calls.RecordChat
	mock.lockRecordChat.RUnlock()
	return calls
}
