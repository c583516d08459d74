package seeder

func Defaults() []Seeder {
	return []Seeder{
		RecruitersSeeder{},
		JobsSeeder{},
		CandidatesSeeder{},
	}
}
