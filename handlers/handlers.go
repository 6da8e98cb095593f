package handlers

import (
	"github.com/calltechcare/backend-go/cms"
	"github.com/calltechcare/backend-go/config"
	"github.com/calltechcare/backend-go/mailer"
	"github.com/calltechcare/backend-go/mailinglist"
	"github.com/stripe/stripe-go/v80"
)

var (
	cmsClient  *cms.Client
	mail       *mailer.Mailer
	listClient *mailinglist.Client
)

// Init wires the shared clients from the process configuration. Called once
// from main after config.Load.
func Init() {
	stripe.Key = config.C.StripeSecretKey
	cmsClient = cms.NewClient(config.C.CMSBaseURL, config.C.CMSToken)
	mail = mailer.New()
	listClient = mailinglist.NewClient(
		config.C.MailingListBaseURL,
		config.C.MailingListAPIKey,
		config.C.MailingListID,
	)
}
