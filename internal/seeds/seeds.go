package seeds

func SeedAll() error {
	if err := SeedProviders(); err != nil {
		return err
	}
	if err := SeedCircuits(); err != nil {
		return err
	}
	if err := SeedBilling(); err != nil {
		return err
	}
	if err := SeedTickets(); err != nil {
		return err
	}
	return nil
}
