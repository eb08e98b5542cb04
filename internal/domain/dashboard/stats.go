package dashboard

import "time"

type MonthlyCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

type Stats struct {
	TotalCompanies       int            `json:"totalCompanies"`
	VerifiedCompanies    int            `json:"verifiedCompanies"`
	PendingVerifications int            `json:"pendingVerifications"`
	VerificationRate     int            `json:"verificationRate"`
	TotalJobs            int            `json:"totalJobs"`
	ActiveJobs           int            `json:"activeJobs"`
	TotalApplications    int            `json:"totalApplications"`
	PendingApplications  int            `json:"pendingApplications"`
	TotalFreelancers     int            `json:"totalFreelancers"`
	FreelancerGrowth     int            `json:"freelancerGrowth"`
	CompanyGrowth        int            `json:"companyGrowth"`
	JobsPostedByMonth    []MonthlyCount `json:"jobsPostedByMonth"`
	GeneratedAt          time.Time      `json:"generatedAt"`
}

// MonthStart returns the first instant of the month offset months from t, in UTC.
func MonthStart(t time.Time, offset int) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month()+time.Month(offset), 1, 0, 0, 0, 0, time.UTC)
}

// GrowthCutoff is the baseline instant used for growth figures: the start of
// the previous calendar month.
func GrowthCutoff(now time.Time) time.Time {
	return MonthStart(now, -1)
}

// WindowStart is the first instant covered by the monthly job chart.
func WindowStart(now time.Time, months int) time.Time {
	return MonthStart(now, -(months - 1))
}

// BucketByMonth counts timestamps into months buckets ending with the month
// of now. Each bucket is [monthStart, nextMonthStart).
func BucketByMonth(now time.Time, months int, stamps []time.Time) []MonthlyCount {
	if months <= 0 {
		return []MonthlyCount{}
	}
	out := make([]MonthlyCount, months)
	starts := make([]time.Time, months+1)
	for i := 0; i <= months; i++ {
		starts[i] = MonthStart(now, i-(months-1))
	}
	for i := 0; i < months; i++ {
		out[i].Month = starts[i].Format("Jan 2006")
	}
	for _, ts := range stamps {
		ts = ts.UTC()
		for i := 0; i < months; i++ {
			if !ts.Before(starts[i]) && ts.Before(starts[i+1]) {
				out[i].Count++
				break
			}
		}
	}
	return out
}
