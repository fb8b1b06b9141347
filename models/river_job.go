package models

// periodic job archiving varsler and referater without journalpost id
type JournalforingArgs struct{}

func (JournalforingArgs) Kind() string { return "journalforing" }

// periodic job publishing unpublished status endringer
type StatusEndringPublishArgs struct{}

func (StatusEndringPublishArgs) Kind() string { return "status_endring_publish" }

// periodic job closing dialogmoter whose tid is past the cutoff
type OutdatedDialogmoteArgs struct{}

func (OutdatedDialogmoteArgs) Kind() string { return "outdated_dialogmote" }

// periodic job retrying varsel deliveries
type VarselDeliveryArgs struct{}

func (VarselDeliveryArgs) Kind() string { return "varsel_delivery" }
