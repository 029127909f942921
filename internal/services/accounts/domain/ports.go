package domain

import "context"

// Port is the account store surface
type Port interface {
	GetByDomain(ctx context.Context, domain string) (Account, error)
	AppendDiscoveryCall(ctx context.Context, domain string, c Call) (Account, error)
	ListAll(ctx context.Context) ([]Account, error)
	ListDomains(ctx context.Context) ([]string, error)
}
