package seeds

func SeedAll() error {
	if err := SeedProjects(); err != nil {
		return err
	}
	if err := SeedExpenses(); err != nil {
		return err
	}
	if err := SeedContracts(); err != nil {
		return err
	}
	return nil
}
