package payment

import (
	"Livecast-Backend/domain"
	"Livecast-Backend/internal/utils"
	"context"

	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"
	"github.com/midtrans/midtrans-go/snap"
)

type (
	// MidtransService wraps the payment gateway: checkout invoice creation
	// for a pending purchase and status verification for webhook deliveries.
	MidtransService interface {
		CreateInvoice(ctx context.Context, orderID string, grossAmount int64, email string) (string, error)
		CheckTransactionStatus(ctx context.Context, orderID string) (string, error)
	}

	midtransService struct {
		snapClient snap.Client
		coreClient coreapi.Client
	}
)

func NewMidtransService() MidtransService {
	serverKey := utils.GetConfig("SERVER_KEY")
	env := midtrans.Sandbox
	if utils.GetConfig("IsProd") == "true" {
		env = midtrans.Production
	}

	var snapClient snap.Client
	snapClient.New(serverKey, env)

	var coreClient coreapi.Client
	coreClient.New(serverKey, env)

	return &midtransService{
		snapClient: snapClient,
		coreClient: coreClient,
	}
}

func (s *midtransService) CreateInvoice(ctx context.Context, orderID string, grossAmount int64, email string) (string, error) {
	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  orderID,
			GrossAmt: grossAmount,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			Email: email,
		},
	}

	resp, midErr := s.snapClient.CreateTransaction(req)
	if midErr != nil {
		return "", midErr
	}
	return resp.RedirectURL, nil
}

// CheckTransactionStatus re-queries the gateway instead of trusting webhook
// payloads.
func (s *midtransService) CheckTransactionStatus(ctx context.Context, orderID string) (string, error) {
	resp, midErr := s.coreClient.CheckTransaction(orderID)
	if midErr != nil {
		return "", midErr
	}

	switch resp.TransactionStatus {
	case "settlement", "capture":
		return domain.PurchaseStatusSettled, nil
	case "pending":
		return domain.PurchaseStatusPending, nil
	default:
		return domain.PurchaseStatusFailed, nil
	}
}
