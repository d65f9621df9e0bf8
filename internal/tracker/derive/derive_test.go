package derive

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "jobhunt-tracker/internal/common/errors"
	"jobhunt-tracker/internal/models"
)

func app(id, date string, status models.Status, jobType models.JobType) models.Application {
	return models.Application{
		ID:          id,
		DateApplied: date,
		JobTitle:    "Engineer",
		CompanyName: "Company " + id,
		URL:         "https://jobs.example/" + id,
		Status:      status,
		Type:        jobType,
	}
}

// randomCollection builds a reproducible collection with plenty of date ties.
func randomCollection(seed int64, n int) []models.Application {
	r := rand.New(rand.NewSource(seed))
	statuses := models.Statuses()
	types := models.JobTypes()
	titles := []string{"Backend Engineer", "Data Analyst", "SRE", "Frontend Developer"}
	companies := []string{"Acme", "Globex", "Initech", "Umbrella", "acme labs"}
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	out := make([]models.Application, n)
	for i := range out {
		out[i] = models.Application{
			ID:          fmt.Sprintf("id-%d", i),
			DateApplied: base.AddDate(0, 0, r.Intn(40)).Format(models.DateLayout),
			JobTitle:    titles[r.Intn(len(titles))],
			CompanyName: companies[r.Intn(len(companies))],
			URL:         "https://jobs.example",
			Status:      statuses[r.Intn(len(statuses))],
			Type:        types[r.Intn(len(types))],
			ResumeName:  fmt.Sprintf("cv-%d", r.Intn(3)),
		}
	}
	return out
}

func TestCountByStatus_SumsToTotal(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		apps := randomCollection(seed, int(seed)*3)

		sum := 0
		counts := CountByStatus(apps)
		require.Len(t, counts, len(models.Statuses()))
		for i, c := range counts {
			assert.Equal(t, models.Statuses()[i], c.Status)
			sum += c.Count
		}
		assert.Equal(t, len(apps), sum)
		assert.Equal(t, len(apps), Summarize(apps).Total)
	}
}

func TestSummarize_ExcludesWatchlist(t *testing.T) {
	apps := []models.Application{
		app("1", "2024-01-01", models.StatusApplied, models.JobTypeFullTime),
		app("2", "2024-01-01", models.StatusWatchlist, models.JobTypeFullTime),
		app("3", "2024-01-01", models.StatusInterview, models.JobTypeFullTime),
		app("4", "2024-01-01", models.StatusSuccess, models.JobTypeFullTime),
		app("5", "2024-01-01", models.StatusRejected, models.JobTypeFullTime),
		app("6", "2024-01-01", models.StatusApplied, models.JobTypeFullTime),
	}

	s := Summarize(apps)
	assert.Equal(t, Summary{Total: 6, Applied: 2, Rejected: 1, Interviewing: 1, Success: 1}, s)
	assert.Equal(t, 1, s.Total-(s.Applied+s.Rejected+s.Interviewing+s.Success))
}

func TestStatusDistribution(t *testing.T) {
	apps := []models.Application{
		app("1", "2024-01-01", models.StatusSuccess, models.JobTypeFullTime),
		app("2", "2024-01-01", models.StatusWatchlist, models.JobTypeFullTime),
		app("3", "2024-01-01", models.StatusSuccess, models.JobTypeFullTime),
	}

	dist := StatusDistribution(apps)
	require.Len(t, dist, 2)
	assert.Equal(t, StatusSlice{Status: models.StatusWatchlist, Count: 1, Color: "gray", ColorHex: "#94a3b8"}, dist[0])
	assert.Equal(t, StatusSlice{Status: models.StatusSuccess, Count: 2, Color: "green", ColorHex: "#10b981"}, dist[1])

	assert.Empty(t, StatusDistribution(nil))
	assert.NotNil(t, StatusDistribution(nil))
}

func TestFilter_StatusScenario(t *testing.T) {
	apps := []models.Application{
		app("a", "2024-01-10", models.StatusApplied, models.JobTypeFullTime),
		app("b", "2024-01-12", models.StatusSuccess, models.JobTypeFullTime),
	}

	got := Filter(apps, Query{Status: "Success", Type: All})
	require.Len(t, got, 1)
	assert.Equal(t, "2024-01-12", got[0].DateApplied)
}

func TestFilter_Search(t *testing.T) {
	apps := []models.Application{
		{ID: "1", DateApplied: "2024-01-01", JobTitle: "Backend Engineer", CompanyName: "Globex", Status: models.StatusApplied, Type: models.JobTypeFullTime},
		{ID: "2", DateApplied: "2024-01-02", JobTitle: "Analyst", CompanyName: "ACME Corp", Status: models.StatusApplied, Type: models.JobTypeFullTime},
		{ID: "3", DateApplied: "2024-01-03", JobTitle: "Designer", CompanyName: "Initech", Status: models.StatusApplied, Type: models.JobTypeFullTime},
	}

	ids := func(q Query) []string {
		var out []string
		for _, a := range Filter(apps, q) {
			out = append(out, a.ID)
		}
		return out
	}

	assert.Equal(t, []string{"2"}, ids(Query{Search: "acme"}))
	assert.Equal(t, []string{"1"}, ids(Query{Search: "ENGINEER"}))
	assert.Equal(t, []string{"3", "2", "1"}, ids(Query{}))
	assert.Empty(t, ids(Query{Search: "nothing"}))
}

func TestFilter_IsExactSubset(t *testing.T) {
	queries := []Query{
		{Status: All, Type: All},
		{Search: "acme", Status: All, Type: All},
		{Status: string(models.StatusApplied), Type: All},
		{Status: All, Type: string(models.JobTypeWerkstudent)},
		{Search: "e", Status: string(models.StatusRejected), Type: string(models.JobTypeFullTime)},
	}

	for seed := int64(1); seed <= 10; seed++ {
		apps := randomCollection(seed, 50)
		for _, q := range queries {
			got := Filter(apps, q)

			seen := map[string]int{}
			for _, a := range got {
				assert.True(t, q.Matches(a))
				seen[a.ID]++
			}
			for _, a := range apps {
				if q.Matches(a) {
					assert.Equal(t, 1, seen[a.ID], "record %s must appear exactly once", a.ID)
				} else {
					assert.Zero(t, seen[a.ID])
				}
			}
		}
	}
}

func TestFilter_AscIsReverseOfDesc(t *testing.T) {
	for seed := int64(1); seed <= 10; seed++ {
		apps := randomCollection(seed, 60)

		desc := Filter(apps, Query{Sort: SortDesc})
		asc := Filter(apps, Query{Sort: SortAsc})
		require.Len(t, asc, len(desc))
		for i := range desc {
			assert.Equal(t, desc[i], asc[len(asc)-1-i])
		}
		for i := 1; i < len(desc); i++ {
			assert.GreaterOrEqual(t, desc[i-1].DateApplied, desc[i].DateApplied)
		}
	}
}

func TestFilter_TieBreakKeepsCollectionOrder(t *testing.T) {
	apps := []models.Application{
		app("newest", "2024-01-05", models.StatusApplied, models.JobTypeFullTime),
		app("middle", "2024-01-05", models.StatusApplied, models.JobTypeFullTime),
		app("oldest", "2024-01-05", models.StatusApplied, models.JobTypeFullTime),
	}

	desc := Filter(apps, Query{Sort: SortDesc})
	assert.Equal(t, []string{"newest", "middle", "oldest"}, []string{desc[0].ID, desc[1].ID, desc[2].ID})

	asc := Filter(apps, Query{Sort: SortAsc})
	assert.Equal(t, []string{"oldest", "middle", "newest"}, []string{asc[0].ID, asc[1].ID, asc[2].ID})
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	apps := randomCollection(7, 20)
	before := append([]models.Application(nil), apps...)

	Filter(apps, Query{Sort: SortAsc})
	assert.Equal(t, before, apps)
}

func TestQuery_Normalize(t *testing.T) {
	q, err := Query{}.Normalize()
	require.NoError(t, err)
	assert.Equal(t, Query{Status: All, Type: All, Sort: SortDesc}, q)

	q, err = Query{Status: "all", Type: "ALL", Sort: "ASC"}.Normalize()
	require.NoError(t, err)
	assert.Equal(t, Query{Status: All, Type: All, Sort: SortAsc}, q)

	for _, bad := range []Query{
		{Status: "Interview"},
		{Type: "Contract"},
		{Sort: "newest"},
	} {
		_, err := bad.Normalize()
		require.Error(t, err)
		assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInvalidFilterFormat))
	}
}

func TestDistinctLabels(t *testing.T) {
	apps := []models.Application{
		{ID: "1", ResumeName: "cv-b", CoverLetterName: "cl-x"},
		{ID: "2", ResumeName: "", CoverLetterName: ""},
		{ID: "3", ResumeName: "cv-a", CoverLetterName: "cl-x"},
		{ID: "4", ResumeName: "cv-b", CoverLetterName: "cl-y"},
	}

	labels := DistinctLabels(apps)
	assert.Equal(t, []string{"cv-b", "cv-a"}, labels.ResumeNames)
	assert.Equal(t, []string{"cl-x", "cl-y"}, labels.CoverLetterNames)

	empty := DistinctLabels(nil)
	assert.NotNil(t, empty.ResumeNames)
	assert.NotNil(t, empty.CoverLetterNames)
}

func TestActivityHistogram_MonthScenario(t *testing.T) {
	today := time.Date(2024, 2, 1, 15, 30, 0, 0, time.UTC)
	apps := []models.Application{app("1", "2024-01-15", models.StatusApplied, models.JobTypeFullTime)}

	buckets, err := ActivityHistogram(apps, 30, today)
	require.NoError(t, err)
	require.Len(t, buckets, 30)

	assert.Equal(t, "2024-01-03", buckets[0].Date)
	assert.Equal(t, "2024-02-01", buckets[29].Date)
	for _, b := range buckets {
		if b.Date == "2024-01-15" {
			assert.Equal(t, 1, b.Count)
			assert.Equal(t, "Jan 15", b.Label)
		} else {
			assert.Zero(t, b.Count, b.Date)
		}
	}
}

func TestActivityHistogram_WeekLabelsAndEdges(t *testing.T) {
	today := time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC) // Sunday
	apps := []models.Application{
		app("1", "2024-03-03", models.StatusApplied, models.JobTypeFullTime),
		app("2", "2024-03-03", models.StatusApplied, models.JobTypeFullTime),
		app("3", "2024-02-26", models.StatusApplied, models.JobTypeFullTime), // first day of window
		app("4", "2024-02-25", models.StatusApplied, models.JobTypeFullTime), // just outside
		app("5", "2024-03-04", models.StatusApplied, models.JobTypeFullTime), // future
	}

	buckets, err := ActivityHistogram(apps, 7, today)
	require.NoError(t, err)
	require.Len(t, buckets, 7)

	assert.Equal(t, DayBucket{Date: "2024-02-26", Label: "Mon, Feb 26", Count: 1}, buckets[0])
	assert.Equal(t, DayBucket{Date: "2024-02-29", Label: "Thu, Feb 29", Count: 0}, buckets[3])
	assert.Equal(t, DayBucket{Date: "2024-03-03", Label: "Sun, Mar 3", Count: 2}, buckets[6])
	assert.Equal(t, 3, HistogramTotal(buckets))
}

func TestActivityHistogram_TotalMatchesWindow(t *testing.T) {
	today := time.Date(2024, 1, 25, 8, 0, 0, 0, time.UTC)
	for seed := int64(1); seed <= 10; seed++ {
		apps := randomCollection(seed, 80)
		for _, days := range []int{7, 30} {
			buckets, err := ActivityHistogram(apps, days, today)
			require.NoError(t, err)
			require.Len(t, buckets, days)

			from := today.AddDate(0, 0, -(days - 1)).Format(models.DateLayout)
			to := today.Format(models.DateLayout)
			want := 0
			for _, a := range apps {
				if a.DateApplied >= from && a.DateApplied <= to {
					want++
				}
			}
			for _, b := range buckets {
				assert.GreaterOrEqual(t, b.Count, 0)
			}
			assert.Equal(t, want, HistogramTotal(buckets))
		}
	}
}

func TestActivityHistogram_UsesTodaysLocation(t *testing.T) {
	loc := time.FixedZone("UTC+14", 14*3600)
	// 2024-01-10 20:00 UTC is already 2024-01-11 in UTC+14.
	today := time.Date(2024, 1, 10, 20, 0, 0, 0, time.UTC).In(loc)

	buckets, err := ActivityHistogram(nil, 7, today)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-11", buckets[6].Date)
}

func TestActivityHistogram_InvalidWindow(t *testing.T) {
	for _, days := range []int{0, 1, 14, 31, -7} {
		_, err := ActivityHistogram(nil, days, time.Now())
		require.Error(t, err)
		assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInvalidWindow))
	}
}

func TestDerive_Deterministic(t *testing.T) {
	apps := randomCollection(42, 40)
	today := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	h1, _ := ActivityHistogram(apps, 30, today)
	h2, _ := ActivityHistogram(apps, 30, today)
	assert.Equal(t, h1, h2)
	assert.Equal(t, Filter(apps, Query{Search: "a"}), Filter(apps, Query{Search: "a"}))
	assert.Equal(t, StatusDistribution(apps), StatusDistribution(apps))
	assert.Equal(t, DistinctLabels(apps), DistinctLabels(apps))
}
