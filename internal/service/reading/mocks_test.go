package reading

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/reading-copilot/internal/adapter/provider/pdf"
	"github.com/heartmarshall/reading-copilot/internal/adapter/provider/webpage"
	"github.com/heartmarshall/reading-copilot/internal/domain"
)

// Ensure, that textRepoMock does implement textRepo.
var _ textRepo = &textRepoMock{}

// textRepoMock is a mock implementation of textRepo.
type textRepoMock struct {
	// CreateFunc mocks the Create method.
	CreateFunc func(ctx context.Context, t domain.Text) (*domain.Text, error)

	// DeleteFunc mocks the Delete method.
	DeleteFunc func(ctx context.Context, userID uuid.UUID, id int64) error

	// GetByIDFunc mocks the GetByID method.
	GetByIDFunc func(ctx context.Context, userID uuid.UUID, id int64) (*domain.Text, error)

	// ListByUserFunc mocks the ListByUser method.
	ListByUserFunc func(ctx context.Context, userID uuid.UUID) ([]domain.Text, error)

	// UpdateFunc mocks the Update method.
	UpdateFunc func(ctx context.Context, userID uuid.UUID, id int64, p domain.TextPatch) (*domain.Text, error)

	// UpdateProgressFunc mocks the UpdateProgress method.
	UpdateProgressFunc func(ctx context.Context, userID uuid.UUID, id int64, p domain.ProgressPatch) (*domain.Text, error)

	// calls tracks calls to the methods.
	calls struct {
		// Create holds details about calls to the Create method.
		Create []struct {
			// Ctx is the ctx argument value.
			Ctx context.Context
			// T is the t argument value.
			T domain.Text
		}
		// Delete holds details about calls to the Delete method.
		Delete []struct {
			// Ctx is the ctx argument value.
			Ctx context.Context
			// UserID is the userID argument value.
			UserID uuid.UUID
			// ID is the id argument value.
			ID int64
		}
		// GetByID holds details about calls to the GetByID method.
		GetByID []struct {
			// Ctx is the ctx argument value.
			Ctx context.Context
			// UserID is the userID argument value.
			UserID uuid.UUID
			// ID is the id argument value.
			ID int64
		}
		// ListByUser holds details about calls to the ListByUser method.
		ListByUser []struct {
			// Ctx is the ctx argument value.
			Ctx context.Context
			// UserID is the userID argument value.
			UserID uuid.UUID
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
			P domain.TextPatch
		}
		// UpdateProgress holds details about calls to the UpdateProgress method.
		UpdateProgress []struct {
			// Ctx is the ctx argument value.
			Ctx context.Context
			// UserID is the userID argument value.
			UserID uuid.UUID
			// ID is the id argument value.
			ID int64
			// P is the p argument value.
			P domain.ProgressPatch
		}
	}
	lockCreate         sync.RWMutex
	lockDelete         sync.RWMutex
	lockGetByID        sync.RWMutex
	lockListByUser     sync.RWMutex
	lockUpdate         sync.RWMutex
	lockUpdateProgress sync.RWMutex
}

// Create calls CreateFunc.
func (mock *textRepoMock) Create(ctx context.Context, t domain.Text) (*domain.Text, error) {
	if mock.CreateFunc == nil {
		panic("textRepoMock.CreateFunc: method is nil but textRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		T   domain.Text
	}{
		Ctx: ctx,
		T:   t,
	}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, t)
}

// CreateCalls gets all the calls that were made to Create.
// Check the length with:
//
//	len(mockedTextRepo.CreateCalls())
func (mock *textRepoMock) CreateCalls() []struct {
	Ctx context.Context
	T   domain.Text
} {
	var calls []struct {
		Ctx context.Context
		T   domain.Text
	}
	mock.lockCreate.RLock()
	calls = mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

// Delete calls DeleteFunc.
func (mock *textRepoMock) Delete(ctx context.Context, userID uuid.UUID, id int64) error {
	if mock.DeleteFunc == nil {
		panic("textRepoMock.DeleteFunc: method is nil but textRepo.Delete was just called")
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
	mock.lockDelete.Lock()
	mock.calls.Delete = append(mock.calls.Delete, callInfo)
	mock.lockDelete.Unlock()
	return mock.DeleteFunc(ctx, userID, id)
}

// DeleteCalls gets all the calls that were made to Delete.
// Check the length with:
//
//	len(mockedTextRepo.DeleteCalls())
func (mock *textRepoMock) DeleteCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
	ID     int64
} {
	var calls []struct {
		Ctx    context.Context
		UserID uuid.UUID
		ID     int64
	}
	mock.lockDelete.RLock()
	calls = mock.calls.Delete
	mock.lockDelete.RUnlock()
	return calls
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

// ListByUser calls ListByUserFunc.
func (mock *textRepoMock) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Text, error) {
	if mock.ListByUserFunc == nil {
		panic("textRepoMock.ListByUserFunc: method is nil but textRepo.ListByUser was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
	}{
		Ctx:    ctx,
		UserID: userID,
	}
	mock.lockListByUser.Lock()
	mock.calls.ListByUser = append(mock.calls.ListByUser, callInfo)
	mock.lockListByUser.Unlock()
	return mock.ListByUserFunc(ctx, userID)
}

// ListByUserCalls gets all the calls that were made to ListByUser.
// Check the length with:
//
//	len(mockedTextRepo.ListByUserCalls())
func (mock *textRepoMock) ListByUserCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
} {
	var calls []struct {
		Ctx    context.Context
		UserID uuid.UUID
	}
	mock.lockListByUser.RLock()
	calls = mock.calls.ListByUser
	mock.lockListByUser.RUnlock()
	return calls
}

// Update calls UpdateFunc.
func (mock *textRepoMock) Update(ctx context.Context, userID uuid.UUID, id int64, p domain.TextPatch) (*domain.Text, error) {
	if mock.UpdateFunc == nil {
		panic("textRepoMock.UpdateFunc: method is nil but textRepo.Update was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
		ID     int64
		P      domain.TextPatch
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
//	len(mockedTextRepo.UpdateCalls())
func (mock *textRepoMock) UpdateCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
	ID     int64
	P      domain.TextPatch
} {
	var calls []struct {
		Ctx    context.Context
		UserID uuid.UUID
		ID     int64
		P      domain.TextPatch
	}
	mock.lockUpdate.RLock()
	calls = mock.calls.Update
	mock.lockUpdate.RUnlock()
	return calls
}

// UpdateProgress calls UpdateProgressFunc.
func (mock *textRepoMock) UpdateProgress(ctx context.Context, userID uuid.UUID, id int64, p domain.ProgressPatch) (*domain.Text, error) {
	if mock.UpdateProgressFunc == nil {
		panic("textRepoMock.UpdateProgressFunc: method is nil but textRepo.UpdateProgress was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		UserID uuid.UUID
		ID     int64
		P      domain.ProgressPatch
	}{
		Ctx:    ctx,
		UserID: userID,
		ID:     id,
		P:      p,
	}
	mock.lockUpdateProgress.Lock()
	mock.calls.UpdateProgress = append(mock.calls.UpdateProgress, callInfo)
	mock.lockUpdateProgress.Unlock()
	return mock.UpdateProgressFunc(ctx, userID, id, p)
}

// UpdateProgressCalls gets all the calls that were made to UpdateProgress.
// Check the length with:
//
//	len(mockedTextRepo.UpdateProgressCalls())
func (mock *textRepoMock) UpdateProgressCalls() []struct {
	Ctx    context.Context
	UserID uuid.UUID
	ID     int64
	P      domain.ProgressPatch
} {
	var calls []struct {
		Ctx    context.Context
		UserID uuid.UUID
		ID     int64
		P      domain.ProgressPatch
	}
	mock.lockUpdateProgress.RLock()
	calls = mock.calls.UpdateProgress
	mock.lockUpdateProgress.RUnlock()
	return calls
}

// Ensure, that sentenceRepoMock does implement sentenceRepo.
var _ sentenceRepo = &sentenceRepoMock{}

// sentenceRepoMock is a mock implementation of sentenceRepo.
type sentenceRepoMock struct {
	// CountParagraphsFunc mocks the CountParagraphs method.
	CountParagraphsFunc func(ctx context.Context, textID int64) (int, error)

	// DeleteByTextFunc mocks the DeleteByText method.
	DeleteByTextFunc func(ctx context.Context, textID int64) (int64, error)

	// GetByIDFunc mocks the GetByID method.
	GetByIDFunc func(ctx context.Context, userID uuid.UUID, id int64) (*domain.Sentence, error)

	// InsertBatchFunc mocks the InsertBatch method.
	InsertBatchFunc func(ctx context.Context, textID int64, sentences []domain.NewSentence) (int, error)

	// ListByTextFunc mocks the ListByText method.
	ListByTextFunc func(ctx context.Context, textID int64) ([]domain.Sentence, error)

	// ListParagraphPageFunc mocks the ListParagraphPage method.
	ListParagraphPageFunc func(ctx context.Context, textID int64, offset int, limit int) ([]domain.Sentence, error)

	// ParagraphOrdinalFunc mocks the ParagraphOrdinal method.
	ParagraphOrdinalFunc func(ctx context.Context, textID int64, sentenceID int64) (int, error)

	// UpdateFunc mocks the Update method.
	UpdateFunc func(ctx context.Context, userID uuid.UUID, id int64, p domain.SentencePatch) (*domain.Sentence, error)

	// calls tracks calls to the methods.
	calls struct {
		// CountParagraphs holds details about calls to the CountParagraphs method.
		CountParagraphs []struct {
			// Ctx is the ctx argument value.
			Ctx context.Context
			// TextID is the textID argument value.
			TextID int64
		}
		// DeleteByText holds details about calls to the DeleteByText method.
		DeleteByText []struct {
			// Ctx is the ctx argument value.
			Ctx context.Context
			// TextID is the textID argument value.
			TextID int64
		}
		// GetByID holds details about calls to the GetByID method.
		GetByID []struct {
			// Ctx is the ctx argument value.
			Ctx context.Context
			// UserID is the userID argument value.
			UserID uuid.UUID
			// ID is the id argument value.
			ID int64
		}
		// InsertBatch holds details about calls to the InsertBatch method.
		InsertBatch []struct {
			// Ctx is the ctx argument value.
			Ctx context.Context
			// TextID is the textID argument value.
			TextID int64
			// Sentences is the sentences argument value.
			Sentences []domain.NewSentence
		}
		// ListByText holds details about calls to the ListByText method.
		ListByText []struct {
			// Ctx is the ctx argument value.
			Ctx context.Context
			// TextID is the textID argument value.
			TextID int64
		}
		// ListParagraphPage holds details about calls to the ListParagraphPage method.
		ListParagraphPage []struct {
			// Ctx is the ctx argument value.
			Ctx context.Context
			// TextID is the textID argument value.
			TextID int64
			// Offset is the offset argument value.
			Offset int
			// Limit is the limit argument value.
			Limit int
		}
		// ParagraphOrdinal holds details about calls to the ParagraphOrdinal method.
		ParagraphOrdinal []struct {
			// Ctx is the ctx argument value.
			Ctx context.Context
			// TextID is the textID argument value.
			TextID int64
			// SentenceID is the sentenceID argument value.
			SentenceID int64
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
	lockCountParagraphs   sync.RWMutex
	lockDeleteByText      sync.RWMutex
	lockGetByID           sync.RWMutex
	lockInsertBatch       sync.RWMutex
	lockListByText        sync.RWMutex
	lockListParagraphPage sync.RWMutex
	lockParagraphOrdinal  sync.RWMutex
	lockUpdate            sync.RWMutex
}

// CountParagraphs calls CountParagraphsFunc.
func (mock *sentenceRepoMock) CountParagraphs(ctx context.Context, textID int64) (int, error) {
	if mock.CountParagraphsFunc == nil {
		panic("sentenceRepoMock.CountParagraphsFunc: method is nil but sentenceRepo.CountParagraphs was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		TextID int64
	}{
		Ctx:    ctx,
		TextID: textID,
	}
	mock.lockCountParagraphs.Lock()
	mock.calls.CountParagraphs = append(mock.calls.CountParagraphs, callInfo)
	mock.lockCountParagraphs.Unlock()
	return mock.CountParagraphsFunc(ctx, textID)
}

// CountParagraphsCalls gets all the calls that were made to CountParagraphs.
// Check the length with:
//
//	len(mockedSentenceRepo.CountParagraphsCalls())
func (mock *sentenceRepoMock) CountParagraphsCalls() []struct {
	Ctx    context.Context
	TextID int64
} {
	var calls []struct {
		Ctx    context.Context
		TextID int64
	}
	mock.lockCountParagraphs.RLock()
	calls = mock.calls.CountParagraphs
	mock.lockCountParagraphs.RUnlock()
	return calls
}

// DeleteByText calls DeleteByTextFunc.
func (mock *sentenceRepoMock) DeleteByText(ctx context.Context, textID int64) (int64, error) {
	if mock.DeleteByTextFunc == nil {
		panic("sentenceRepoMock.DeleteByTextFunc: method is nil but sentenceRepo.DeleteByText was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		TextID int64
	}{
		Ctx:    ctx,
		TextID: textID,
	}
	mock.lockDeleteByText.Lock()
	mock.calls.DeleteByText = append(mock.calls.DeleteByText, callInfo)
	mock.lockDeleteByText.Unlock()
	return mock.DeleteByTextFunc(ctx, textID)
}

// DeleteByTextCalls gets all the calls that were made to DeleteByText.
// Check the length with:
//
//	len(mockedSentenceRepo.DeleteByTextCalls())
func (mock *sentenceRepoMock) DeleteByTextCalls() []struct {
	Ctx    context.Context
	TextID int64
} {
	var calls []struct {
		Ctx    context.Context
		TextID int64
	}
	mock.lockDeleteByText.RLock()
	calls = mock.calls.DeleteByText
	mock.lockDeleteByText.RUnlock()
	return calls
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

// InsertBatch calls InsertBatchFunc.
func (mock *sentenceRepoMock) InsertBatch(ctx context.Context, textID int64, sentences []domain.NewSentence) (int, error) {
	if mock.InsertBatchFunc == nil {
		panic("sentenceRepoMock.InsertBatchFunc: method is nil but sentenceRepo.InsertBatch was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		TextID    int64
		Sentences []domain.NewSentence
	}{
		Ctx:       ctx,
		TextID:    textID,
		Sentences: sentences,
	}
	mock.lockInsertBatch.Lock()
	mock.calls.InsertBatch = append(mock.calls.InsertBatch, callInfo)
	mock.lockInsertBatch.Unlock()
	return mock.InsertBatchFunc(ctx, textID, sentences)
}

// InsertBatchCalls gets all the calls that were made to InsertBatch.
// Check the length with:
//
//	len(mockedSentenceRepo.InsertBatchCalls())
func (mock *sentenceRepoMock) InsertBatchCalls() []struct {
	Ctx       context.Context
	TextID    int64
	Sentences []domain.NewSentence
} {
	var calls []struct {
		Ctx       context.Context
		TextID    int64
		Sentences []domain.NewSentence
	}
	mock.lockInsertBatch.RLock()
	calls = mock.calls.InsertBatch
	mock.lockInsertBatch.RUnlock()
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

// ListParagraphPage calls ListParagraphPageFunc.
func (mock *sentenceRepoMock) ListParagraphPage(ctx context.Context, textID int64, offset int, limit int) ([]domain.Sentence, error) {
	if mock.ListParagraphPageFunc == nil {
		panic("sentenceRepoMock.ListParagraphPageFunc: method is nil but sentenceRepo.ListParagraphPage was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		TextID int64
		Offset int
		Limit  int
	}{
		Ctx:    ctx,
		TextID: textID,
		Offset: offset,
		Limit:  limit,
	}
	mock.lockListParagraphPage.Lock()
	mock.calls.ListParagraphPage = append(mock.calls.ListParagraphPage, callInfo)
	mock.lockListParagraphPage.Unlock()
	return mock.ListParagraphPageFunc(ctx, textID, offset, limit)
}

// ListParagraphPageCalls gets all the calls that were made to ListParagraphPage.
// Check the length with:
//
//	len(mockedSentenceRepo.ListParagraphPageCalls())
func (mock *sentenceRepoMock) ListParagraphPageCalls() []struct {
	Ctx    context.Context
	TextID int64
	Offset int
	Limit  int
} {
	var calls []struct {
		Ctx    context.Context
		TextID int64
		Offset int
		Limit  int
	}
	mock.lockListParagraphPage.RLock()
	calls = mock.calls.ListParagraphPage
	mock.lockListParagraphPage.RUnlock()
	return calls
}

// ParagraphOrdinal calls ParagraphOrdinalFunc.
func (mock *sentenceRepoMock) ParagraphOrdinal(ctx context.Context, textID int64, sentenceID int64) (int, error) {
	if mock.ParagraphOrdinalFunc == nil {
		panic("sentenceRepoMock.ParagraphOrdinalFunc: method is nil but sentenceRepo.ParagraphOrdinal was just called")
	}
	callInfo := struct {
		Ctx        context.Context
		TextID     int64
		SentenceID int64
	}{
		Ctx:        ctx,
		TextID:     textID,
		SentenceID: sentenceID,
	}
	mock.lockParagraphOrdinal.Lock()
	mock.calls.ParagraphOrdinal = append(mock.calls.ParagraphOrdinal, callInfo)
	mock.lockParagraphOrdinal.Unlock()
	return mock.ParagraphOrdinalFunc(ctx, textID, sentenceID)
}

// ParagraphOrdinalCalls gets all the calls that were made to ParagraphOrdinal.
// Check the length with:
//
//	len(mockedSentenceRepo.ParagraphOrdinalCalls())
func (mock *sentenceRepoMock) ParagraphOrdinalCalls() []struct {
	Ctx        context.Context
	TextID     int64
	SentenceID int64
} {
	var calls []struct {
		Ctx        context.Context
		TextID     int64
		SentenceID int64
	}
	mock.lockParagraphOrdinal.RLock()
	calls = mock.calls.ParagraphOrdinal
	mock.lockParagraphOrdinal.RUnlock()
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

// Ensure, that txManagerMock does implement txManager.
var _ txManager = &txManagerMock{}

// txManagerMock is a mock implementation of txManager.
type txManagerMock struct {
	// RunInTxFunc mocks the RunInTx method.
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error

	// calls tracks calls to the methods.
	calls struct {
		// RunInTx holds details about calls to the RunInTx method.
		RunInTx []struct {
			// Ctx is the ctx argument value.
			Ctx context.Context
			// Fn is the fn argument value.
			Fn func(ctx context.Context) error
		}
	}
	lockRunInTx sync.RWMutex
}

// RunInTx calls RunInTxFunc.
func (mock *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if mock.RunInTxFunc == nil {
		panic("txManagerMock.RunInTxFunc: method is nil but txManager.RunInTx was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Fn  func(ctx context.Context) error
	}{
		Ctx: ctx,
		Fn:  fn,
	}
	mock.lockRunInTx.Lock()
	mock.calls.RunInTx = append(mock.calls.RunInTx, callInfo)
	mock.lockRunInTx.Unlock()
	return mock.RunInTxFunc(ctx, fn)
}

// RunInTxCalls gets all the calls that were made to RunInTx.
// Check the length with:
//
//	len(mockedTxManager.RunInTxCalls())
func (mock *txManagerMock) RunInTxCalls() []struct {
	Ctx context.Context
	Fn  func(ctx context.Context) error
} {
	var calls []struct {
		Ctx context.Context
		Fn  func(ctx context.Context) error
	}
	mock.lockRunInTx.RLock()
	calls = mock.calls.RunInTx
	mock.lockRunInTx.RUnlock()
	return calls
}

// Ensure, that articleFetcherMock does implement articleFetcher.
var _ articleFetcher = &articleFetcherMock{}

// articleFetcherMock is a mock implementation of articleFetcher.
type articleFetcherMock struct {
	// FetchFunc mocks the Fetch method.
	FetchFunc func(ctx context.Context, rawURL string) (webpage.Article, error)

	// calls tracks calls to the methods.
	calls struct {
		// Fetch holds details about calls to the Fetch method.
		Fetch []struct {
			// Ctx is the ctx argument value.
			Ctx context.Context
			// RawURL is the rawURL argument value.
			RawURL string
		}
	}
	lockFetch sync.RWMutex
}

// Fetch calls FetchFunc.
func (mock *articleFetcherMock) Fetch(ctx context.Context, rawURL string) (webpage.Article, error) {
	if mock.FetchFunc == nil {
		panic("articleFetcherMock.FetchFunc: method is nil but articleFetcher.Fetch was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		RawURL string
	}{
		Ctx:    ctx,
		RawURL: rawURL,
	}
	mock.lockFetch.Lock()
	mock.calls.Fetch = append(mock.calls.Fetch, callInfo)
	mock.lockFetch.Unlock()
	return mock.FetchFunc(ctx, rawURL)
}

// FetchCalls gets all the calls that were made to Fetch.
// Check the length with:
//
//	len(mockedArticleFetcher.FetchCalls())
func (mock *articleFetcherMock) FetchCalls() []struct {
	Ctx    context.Context
	RawURL string
} {
	var calls []struct {
		Ctx    context.Context
		RawURL string
	}
	mock.lockFetch.RLock()
	calls = mock.calls.Fetch
	mock.lockFetch.RUnlock()
	return calls
}

// Ensure, that pdfExtractorMock does implement pdfExtractor.
var _ pdfExtractor = &pdfExtractorMock{}

// pdfExtractorMock is a mock implementation of pdfExtractor.
type pdfExtractorMock struct {
	// ExtractFunc mocks the Extract method.
	ExtractFunc func(ctx context.Context, data []byte) (pdf.Document, error)

	// calls tracks calls to the methods.
	calls struct {
		// Extract holds details about calls to the Extract method.
		Extract []struct {
			// Ctx is the ctx argument value.
			Ctx context.Context
			// Data is the data argument value.
			Data []byte
		}
	}
	lockExtract sync.RWMutex
}

// Extract calls ExtractFunc.
func (mock *pdfExtractorMock) Extract(ctx context.Context, data []byte) (pdf.Document, error) {
	if mock.ExtractFunc == nil {
		panic("pdfExtractorMock.ExtractFunc: method is nil but pdfExtractor.Extract was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Data []byte
	}{
		Ctx:  ctx,
		Data: data,
	}
	mock.lockExtract.Lock()
	mock.calls.Extract = append(mock.calls.Extract, callInfo)
	mock.lockExtract.Unlock()
	return mock.ExtractFunc(ctx, data)
}

// ExtractCalls gets all the calls that were made to Extract.
// Check the length with:
//
//	len(mockedPdfExtractor.ExtractCalls())
func (mock *pdfExtractorMock) ExtractCalls() []struct {
	Ctx  context.Context
	Data []byte
} {
	var calls []struct {
		Ctx  context.Context
		Data []byte
	}
	mock.lockExtract.RLock()
	calls = mock.calls.Extract
	mock.lockExtract.RUnlock()
	return calls
}

// Ensure, that annotateRecorderMock does implement annotateRecorder.
var _ annotateRecorder = &annotateRecorderMock{}

// annotateRecorderMock is a mock implementation of annotateRecorder.
type annotateRecorderMock struct {
	// RecordAnnotateFunc mocks the RecordAnnotate method.
	RecordAnnotateFunc func(ctx context.Context, elapsed time.Duration, matched int, unmatched int)

	// calls tracks calls to the methods.
	calls struct {
		// RecordAnnotate holds details about calls to the RecordAnnotate method.
		RecordAnnotate []struct {
			// Ctx is the ctx argument value.
			Ctx context.Context
			// Elapsed is the elapsed argument value.
			Elapsed time.Duration
			// Matched is the matched argument value.
			Matched int
			// Unmatched is the unmatched argument value.
			Unmatched int
		}
	}
	lockRecordAnnotate sync.RWMutex
}

// RecordAnnotate calls RecordAnnotateFunc.
func (mock *annotateRecorderMock) RecordAnnotate(ctx context.Context, elapsed time.Duration, matched int, unmatched int) {
	if mock.RecordAnnotateFunc == nil {
		panic("annotateRecorderMock.RecordAnnotateFunc: method is nil but annotateRecorder.RecordAnnotate was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		Elapsed   time.Duration
		Matched   int
		Unmatched int
	}{
		Ctx:       ctx,
		Elapsed:   elapsed,
		Matched:   matched,
		Unmatched: unmatched,
	}
	mock.lockRecordAnnotate.Lock()
	mock.calls.RecordAnnotate = append(mock.calls.RecordAnnotate, callInfo)
	mock.lockRecordAnnotate.Unlock()
	mock.RecordAnnotateFunc(ctx, elapsed, matched, unmatched)
}

// RecordAnnotateCalls gets all the calls that were made to RecordAnnotate.
// Check the length with:
//
//	len(mockedAnnotateRecorder.RecordAnnotateCalls())
func (mock *annotateRecorderMock) RecordAnnotateCalls() []struct {
	Ctx       context.Context
	Elapsed   time.Duration
	Matched   int
	Unmatched int
} {
	var calls []struct {
		Ctx       context.Context
		Elapsed   time.Duration
		Matched   int
		Unmatched int
	}
	mock.lockRecordAnnotate.RLock()
	calls = mock.calls.RecordAnnotate
	mock.lockRecordAnnotate.RUnlock()
	return calls
}
