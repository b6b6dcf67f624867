package careers

import "context"

// SampleJobs are seeded into empty dev backends so the portal is browsable
// without manual setup.
var SampleJobs = []NewJob{
	{
		Title:       "Content Writer",
		Department:  "Editorial",
		Type:        "Full-time",
		Level:       "Mid",
		Location:    "Mumbai",
		Description: "Write and edit automotive reviews, comparisons and buying guides.",
		Requirements: []string{
			"2+ years of writing experience",
			"Strong command of English",
			"Interest in cars and bikes",
		},
	},
	{
		Title:       "Video Editor",
		Department:  "Production",
		Type:        "Full-time",
		Level:       "Senior",
		Location:    "Mumbai",
		Description: "Cut long-form car reviews into publish-ready videos.",
		Requirements: []string{
			"Proficiency with Premiere Pro",
			"Portfolio of published edits",
		},
	},
	{
		Title:       "Social Media Executive",
		Department:  "Marketing",
		Type:        "Full-time",
		Location:    "Mumbai",
		Description: "Plan and run campaigns across Instagram and YouTube.",
		Requirements: []string{
			"Hands-on experience growing a social account",
			"Basic analytics skills",
		},
	},
}

// SeedSampleJobs inserts the sample jobs when the backend has none. Safe to
// call on every boot.
func SeedSampleJobs(ctx context.Context, store Storage) (int, error) {
	existing, err := store.GetAllJobs(ctx)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}
	created := 0
	for _, job := range SampleJobs {
		if _, err := store.CreateJob(ctx, job); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}
