package core

import "time"

type AmountType string

const (
	AmountTypeSend    AmountType = "SEND"
	AmountTypeReceive AmountType = "RECEIVE"
)

type PartyIDInfo struct {
	PartyIDType      string `json:"partyIdType" validate:"required,oneof=MSISDN EMAIL PERSONAL_ID BUSINESS DEVICE ACCOUNT_ID IBAN ALIAS"`
	PartyIdentifier  string `json:"partyIdentifier" validate:"required,max=128"`
	PartySubIDOrType string `json:"partySubIdOrType,omitempty" validate:"omitempty,max=128"`
	FspID            string `json:"fspId,omitempty" validate:"omitempty,max=32"`
}

type Party struct {
	PartyIDInfo                PartyIDInfo `json:"partyIdInfo" validate:"required"`
	MerchantClassificationCode string      `json:"merchantClassificationCode,omitempty" validate:"omitempty,numeric,max=4"`
	Name                       string      `json:"name,omitempty" validate:"omitempty,max=128"`
	DisplayName                string      `json:"displayName,omitempty" validate:"omitempty,max=128"`
	FirstName                  string      `json:"firstName,omitempty"`
	MiddleName                 string      `json:"middleName,omitempty"`
	LastName                   string      `json:"lastName,omitempty"`
	DateOfBirth                string      `json:"dateOfBirth,omitempty"`
}

// CounterpartyID is the participant that owns the party account, empty until discovery resolves it.
func (p Party) CounterpartyID() string {
	return p.PartyIDInfo.FspID
}

type Extension struct {
	Key   string `json:"key" validate:"required,max=32"`
	Value string `json:"value" validate:"required,max=128"`
}

type ExtensionList struct {
	ExtensionList []Extension `json:"extensionList,omitempty" validate:"omitempty,max=16,dive"`
}

type ErrorInformation struct {
	ErrorCode        string         `json:"errorCode" validate:"required,numeric,len=4"`
	ErrorDescription string         `json:"errorDescription" validate:"required,max=128"`
	ExtensionList    *ExtensionList `json:"extensionList,omitempty"`
}

// LastError is the failure recorded on a leg or batch.
type LastError struct {
	HTTPStatusCode  int               `json:"httpStatusCode,omitempty"`
	MojaloopError   *ErrorInformation `json:"mojaloopError,omitempty"`
	Message         string            `json:"message,omitempty"`
	OccurredAtPhase string            `json:"occurredAtPhase,omitempty"`
}

type Money struct {
	Currency string `json:"currency" validate:"required,len=3,uppercase"`
	Amount   string `json:"amount" validate:"required,amount"`
}

type AutoAcceptParty struct {
	Enabled bool `json:"enabled"`
}

type AutoAcceptQuote struct {
	Enabled              bool    `json:"enabled"`
	PerTransferFeeLimits []Money `json:"perTransferFeeLimits,omitempty" validate:"omitempty,dive"`
}

type Options struct {
	OnlyValidateParty bool            `json:"onlyValidateParty,omitempty"`
	AutoAcceptParty   AutoAcceptParty `json:"autoAcceptParty"`
	AutoAcceptQuote   AutoAcceptQuote `json:"autoAcceptQuote"`
	SkipPartyLookup   bool            `json:"skipPartyLookup,omitempty"`
	Synchronous       bool            `json:"synchronous,omitempty"`
	BulkExpiration    *time.Time      `json:"bulkExpiration,omitempty"`
}

// IndividualTransferRequest is one caller-supplied leg of a bulk request.
type IndividualTransferRequest struct {
	HomeTransactionID  string         `json:"homeTransactionId" validate:"required"`
	To                 Party          `json:"to" validate:"required"`
	AmountType         AmountType     `json:"amountType" validate:"required,oneof=SEND RECEIVE"`
	Currency           string         `json:"currency" validate:"required,len=3,uppercase"`
	Amount             string         `json:"amount" validate:"required,amount"`
	Note               string         `json:"note,omitempty" validate:"omitempty,max=128"`
	QuoteExtensions    *ExtensionList `json:"quoteExtensions,omitempty"`
	TransferExtensions *ExtensionList `json:"transferExtensions,omitempty"`
	LastError          *LastError     `json:"lastError,omitempty"`
}

type BulkTransactionRequest struct {
	BulkHomeTransactionID string                      `json:"bulkHomeTransactionID" validate:"required"`
	BulkTransactionID     string                      `json:"bulkTransactionId,omitempty" validate:"omitempty,uuid"`
	Options               Options                     `json:"options"`
	From                  Party                       `json:"from" validate:"required"`
	IndividualTransfers   []IndividualTransferRequest `json:"individualTransfers" validate:"required,min=1,max=1000,dive"`
	Extensions            *ExtensionList              `json:"extensions,omitempty"`
}

type PartyResult struct {
	Party            *Party            `json:"party,omitempty"`
	CurrentState     string            `json:"currentState,omitempty"`
	ErrorInformation *ErrorInformation `json:"errorInformation,omitempty"`
}

type IndividualQuote struct {
	QuoteID    string         `json:"quoteId" validate:"required,uuid"`
	To         Party          `json:"to" validate:"required"`
	AmountType AmountType     `json:"amountType" validate:"required,oneof=SEND RECEIVE"`
	Currency   string         `json:"currency" validate:"required,len=3,uppercase"`
	Amount     string         `json:"amount" validate:"required,amount"`
	Note       string         `json:"note,omitempty"`
	Extensions *ExtensionList `json:"extensions,omitempty"`
}

type BulkQuotesRequest struct {
	HomeTransactionID string            `json:"homeTransactionId" validate:"required"`
	BulkQuoteID       string            `json:"bulkQuoteId" validate:"required,uuid"`
	From              Party             `json:"from" validate:"required"`
	IndividualQuotes  []IndividualQuote `json:"individualQuotes" validate:"required,min=1,dive"`
	Extensions        *ExtensionList    `json:"extensions,omitempty"`
	Expiration        *time.Time        `json:"expiration,omitempty"`
}

type IndividualQuoteResult struct {
	QuoteID            string            `json:"quoteId"`
	TransferAmount     *Money            `json:"transferAmount,omitempty"`
	PayeeReceiveAmount *Money            `json:"payeeReceiveAmount,omitempty"`
	PayeeFspFee        *Money            `json:"payeeFspFee,omitempty"`
	PayeeFspCommission *Money            `json:"payeeFspCommission,omitempty"`
	IlpPacket          string            `json:"ilpPacket,omitempty"`
	Condition          string            `json:"condition,omitempty"`
	Extensions         *ExtensionList    `json:"extensions,omitempty"`
	LastError          *LastError        `json:"lastError,omitempty"`
	ErrorInformation   *ErrorInformation `json:"errorInformation,omitempty"`
}

// Failed reports whether the counterparty rejected this individual quote.
func (r IndividualQuoteResult) Failed() bool {
	return r.LastError != nil || r.ErrorInformation != nil
}

type BulkQuotesResponse struct {
	BulkQuoteID            string                  `json:"bulkQuoteId"`
	CurrentState           string                  `json:"currentState,omitempty"`
	IndividualQuoteResults []IndividualQuoteResult `json:"individualQuoteResults"`
	Expiration             *time.Time              `json:"expiration,omitempty"`
	Extensions             *ExtensionList          `json:"extensions,omitempty"`
}

type IndividualBulkTransfer struct {
	TransferID string         `json:"transferId" validate:"required,uuid"`
	To         Party          `json:"to" validate:"required"`
	AmountType AmountType     `json:"amountType" validate:"required,oneof=SEND RECEIVE"`
	Currency   string         `json:"currency" validate:"required,len=3,uppercase"`
	Amount     string         `json:"amount" validate:"required,amount"`
	IlpPacket  string         `json:"ilpPacket" validate:"required"`
	Condition  string         `json:"condition" validate:"required"`
	Note       string         `json:"note,omitempty"`
	Extensions *ExtensionList `json:"extensions,omitempty"`
}

type BulkTransfersRequest struct {
	HomeTransactionID   string                   `json:"homeTransactionId" validate:"required"`
	BulkTransferID      string                   `json:"bulkTransferId" validate:"required,uuid"`
	BulkQuoteID         string                   `json:"bulkQuoteId" validate:"required,uuid"`
	From                Party                    `json:"from" validate:"required"`
	IndividualTransfers []IndividualBulkTransfer `json:"individualTransfers" validate:"required,min=1,dive"`
	Extensions          *ExtensionList           `json:"extensions,omitempty"`
}

type IndividualTransferResult struct {
	TransferID       string            `json:"transferId"`
	Fulfilment       string            `json:"fulfilment,omitempty"`
	Extensions       *ExtensionList    `json:"extensions,omitempty"`
	LastError        *LastError        `json:"lastError,omitempty"`
	ErrorInformation *ErrorInformation `json:"errorInformation,omitempty"`
}

func (r IndividualTransferResult) Failed() bool {
	return r.LastError != nil || r.ErrorInformation != nil
}

type BulkTransfersResponse struct {
	BulkTransferID            string                     `json:"bulkTransferId"`
	CurrentState              string                     `json:"currentState,omitempty"`
	CompletedTimestamp        *time.Time                 `json:"completedTimestamp,omitempty"`
	IndividualTransferResults []IndividualTransferResult `json:"individualTransferResults"`
	Extensions                *ExtensionList             `json:"extensions,omitempty"`
}
