package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	apperrors "github.com/shixiaoya/materials/internal/errors"
	"github.com/shixiaoya/materials/internal/model"
)

var inquiryClock = time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)

func newTestInquiryRepository(t *testing.T) (*fileInquiryRepository, string) {
	t.Helper()

	dataDir := t.TempDir()
	repo, err := NewFileInquiryRepository(dataDir)
	require.NoError(t, err, "failed to build file repository")

	fileRepo := repo.(*fileInquiryRepository)
	fileRepo.now = func() time.Time { return inquiryClock }

	return fileRepo, filepath.Join(dataDir, inquiriesFileName)
}

func seedInquiries(t *testing.T, repo *fileInquiryRepository, inquiries ...model.Inquiry) {
	t.Helper()
	for i := range inquiries {
		require.NoError(t, repo.Create(context.Background(), &inquiries[i]))
	}
}

func inquiryFixture(id string, mutate func(*model.Inquiry)) model.Inquiry {
	inq := model.Inquiry{
		ID:            id,
		InquiryNumber: "INQ-20240315-" + id,
		CustomerName:  "张先生",
		CustomerPhone: "13800138001",
		ProductName:   "SU7-胡桃",
		Quantity:      500,
		Requirements:  "需要E0级环保标准",
		Urgency:       model.UrgencyNormal,
		Status:        model.StatusPending,
		CreatedAt:     inquiryClock,
		UpdatedAt:     inquiryClock,
	}
	if mutate != nil {
		mutate(&inq)
	}
	return inq
}

func TestFileInquiryRepositoryInitializesStore(t *testing.T) {
	_, path := newTestInquiryRepository(t)

	data, err := os.ReadFile(path)
	require.NoError(t, err, "store file must be created on first run")
	require.JSONEq(t, `{"inquiries":[]}`, string(data), "store must start as empty collection")
}

func TestFileInquiryRepositoryCorruptFileFallsBackToEmpty(t *testing.T) {
	repo, path := newTestInquiryRepository(t)

	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	page, err := repo.List(context.Background(), InquiryListQuery{})
	require.NoError(t, err, "corrupt store must not fail reads")
	require.Empty(t, page.Inquiries, "corrupt store must behave as empty collection")
	require.Zero(t, page.Stats.Total)
}

func TestFileInquiryRepositoryListPaginationAndStats(t *testing.T) {
	repo, _ := newTestInquiryRepository(t)

	for i := 0; i < 8; i++ {
		n := byte('a' + i)
		inq := inquiryFixture(string(n), func(inq *model.Inquiry) {
			inq.CreatedAt = inquiryClock.Add(time.Duration(i) * time.Minute)
			if i%2 == 0 {
				inq.Status = model.StatusQuoted
			}
		})
		seedInquiries(t, repo, inq)
	}

	page, err := repo.List(context.Background(), InquiryListQuery{
		SortBy:    SortByCreatedAt,
		SortOrder: "asc",
		Page:      2,
		Limit:     3,
	})
	require.NoError(t, err)

	require.Len(t, page.Inquiries, 3, "second page of 8 with limit 3 holds records 4-6")
	require.Equal(t, "d", page.Inquiries[0].ID)
	require.Equal(t, "f", page.Inquiries[2].ID)

	require.Equal(t, 2, page.Pagination.Page)
	require.Equal(t, 3, page.Pagination.Limit)
	require.Equal(t, 8, page.Pagination.Total)
	require.Equal(t, 3, page.Pagination.Pages)

	require.Equal(t, 8, page.Stats.Total, "stats must cover the whole collection, not the page")
	require.Equal(t, 4, page.Stats.Quoted)
	require.Equal(t, 4, page.Stats.Pending)
}

func TestFileInquiryRepositoryFiltersAreCombinedWithAnd(t *testing.T) {
	repo, _ := newTestInquiryRepository(t)

	seedInquiries(t, repo,
		inquiryFixture("a", func(inq *model.Inquiry) {
			inq.Status = model.StatusQuoted
			inq.Urgency = model.UrgencyUrgent
		}),
		inquiryFixture("b", func(inq *model.Inquiry) {
			inq.Status = model.StatusQuoted
			inq.CustomerName = "李女士"
		}),
		inquiryFixture("c", nil),
	)

	page, err := repo.List(context.Background(), InquiryListQuery{
		InquiryFilter: InquiryFilter{
			Status:  model.StatusQuoted,
			Urgency: model.UrgencyUrgent,
		},
	})
	require.NoError(t, err)
	require.Len(t, page.Inquiries, 1, "both predicates must hold")
	require.Equal(t, "a", page.Inquiries[0].ID)
}

func TestFileInquiryRepositorySearchIsCaseInsensitive(t *testing.T) {
	repo, _ := newTestInquiryRepository(t)

	seedInquiries(t, repo,
		inquiryFixture("a", func(inq *model.Inquiry) { inq.ProductName = "SU7-Walnut" }),
		inquiryFixture("b", func(inq *model.Inquiry) { inq.ProductName = "生态板" }),
	)

	page, err := repo.List(context.Background(), InquiryListQuery{
		InquiryFilter: InquiryFilter{Search: "walnut"},
	})
	require.NoError(t, err)
	require.Len(t, page.Inquiries, 1)
	require.Equal(t, "a", page.Inquiries[0].ID)
}

func TestFileInquiryRepositoryFindByIDNotFound(t *testing.T) {
	repo, _ := newTestInquiryRepository(t)

	_, err := repo.FindByID(context.Background(), "missing")
	require.Error(t, err)
	require.IsType(t, &apperrors.NotFoundErr{}, err)
}

func TestFileInquiryRepositoryUpdateStatusPatchSemantics(t *testing.T) {
	repo, _ := newTestInquiryRepository(t)

	seedInquiries(t, repo, inquiryFixture("a", func(inq *model.Inquiry) {
		inq.Notes = "initial note"
	}))

	price := "¥134,000"
	updated, err := repo.UpdateStatus(context.Background(), "a", InquiryStatusPatch{
		Status:      model.StatusQuoted,
		QuotedPrice: &price,
	})
	require.NoError(t, err)

	require.Equal(t, model.StatusQuoted, updated.Status)
	require.Equal(t, price, updated.QuotedPrice)
	require.Equal(t, "initial note", updated.Notes, "absent notes must keep the stored value")
	require.Nil(t, updated.RepliedAt, "replied timestamp is only set when a reply is attached")
	require.Equal(t, inquiryClock, updated.UpdatedAt)

	empty := ""
	updated, err = repo.UpdateStatus(context.Background(), "a", InquiryStatusPatch{
		Status: model.StatusQuoted,
		Notes:  &empty,
	})
	require.NoError(t, err)
	require.Empty(t, updated.Notes, "present empty notes must overwrite the stored value")
}

func TestFileInquiryRepositoryUpdateStatusReplySetsRepliedAt(t *testing.T) {
	repo, _ := newTestInquiryRepository(t)

	seedInquiries(t, repo, inquiryFixture("a", nil))

	reply := "我们已为您准备报价"
	updated, err := repo.UpdateStatus(context.Background(), "a", InquiryStatusPatch{
		Status:     model.StatusQuoted,
		AdminReply: &reply,
	})
	require.NoError(t, err)
	require.Equal(t, reply, updated.AdminReply)
	require.NotNil(t, updated.RepliedAt)
	require.Equal(t, inquiryClock, *updated.RepliedAt)
}

func TestFileInquiryRepositoryDeleteByIDNotFoundKeepsCollection(t *testing.T) {
	repo, _ := newTestInquiryRepository(t)

	seedInquiries(t, repo, inquiryFixture("a", nil))

	err := repo.DeleteByID(context.Background(), "missing")
	require.IsType(t, &apperrors.NotFoundErr{}, err)

	page, err := repo.List(context.Background(), InquiryListQuery{})
	require.NoError(t, err)
	require.Len(t, page.Inquiries, 1, "failed delete must not touch the collection")
}

func TestFileInquiryRepositoryBatchSkipsUnknownIDs(t *testing.T) {
	repo, _ := newTestInquiryRepository(t)

	seedInquiries(t, repo,
		inquiryFixture("a", nil),
		inquiryFixture("b", nil),
		inquiryFixture("c", nil),
	)

	require.NoError(t, repo.DeleteAll(context.Background(), []string{"a", "missing"}))

	page, err := repo.List(context.Background(), InquiryListQuery{})
	require.NoError(t, err)
	require.Len(t, page.Inquiries, 2, "known id must be deleted, unknown silently skipped")

	require.NoError(t, repo.UpdateStatusAll(context.Background(), []string{"b", "missing"}, model.StatusCompleted))

	b, err := repo.FindByID(context.Background(), "b")
	require.NoError(t, err)
	require.Equal(t, model.StatusCompleted, b.Status)
	require.Equal(t, inquiryClock, b.UpdatedAt)

	c, err := repo.FindByID(context.Background(), "c")
	require.NoError(t, err)
	require.Equal(t, model.StatusPending, c.Status, "ids outside the batch must stay untouched")
}

func TestFileInquiryRepositoryFilteredDateBoundsAreInclusive(t *testing.T) {
	repo, _ := newTestInquiryRepository(t)

	seedInquiries(t, repo,
		inquiryFixture("a", func(inq *model.Inquiry) { inq.CreatedAt = inquiryClock.AddDate(0, 0, -2) }),
		inquiryFixture("b", func(inq *model.Inquiry) { inq.CreatedAt = inquiryClock.AddDate(0, 0, -1) }),
		inquiryFixture("c", func(inq *model.Inquiry) { inq.CreatedAt = inquiryClock }),
	)

	start := inquiryClock.AddDate(0, 0, -1)
	end := inquiryClock

	matched, err := repo.Filtered(context.Background(), InquiryExportFilter{
		StartDate: &start,
		EndDate:   &end,
	})
	require.NoError(t, err)
	require.Len(t, matched, 2)
	require.Equal(t, "b", matched[0].ID)
	require.Equal(t, "c", matched[1].ID)
}

func TestFileInquiryRepositoryCreatedSince(t *testing.T) {
	repo, _ := newTestInquiryRepository(t)

	seedInquiries(t, repo,
		inquiryFixture("old", func(inq *model.Inquiry) { inq.CreatedAt = inquiryClock.AddDate(0, 0, -10) }),
		inquiryFixture("new", nil),
	)

	recent, err := repo.CreatedSince(context.Background(), inquiryClock.AddDate(0, 0, -7))
	require.NoError(t, err)
	require.Len(t, recent, 1)
	require.Equal(t, "new", recent[0].ID)
}
