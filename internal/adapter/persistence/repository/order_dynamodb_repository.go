package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"neurovita_checkout/internal/domain/entities"
	"neurovita_checkout/internal/infrastructure/database"
	"neurovita_checkout/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultOrdersTableName = "orders"

type dynamoAPI interface {
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, in *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	UpdateItem(ctx context.Context, in *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	Query(ctx context.Context, in *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	Scan(ctx context.Context, in *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

type orderItem struct {
	ID           string `dynamodbav:"id"`
	OrderNumber  string `dynamodbav:"order_number"`
	Name         string `dynamodbav:"name"`
	Email        string `dynamodbav:"email"`
	Phone        string `dynamodbav:"phone"`
	CEP          string `dynamodbav:"cep"`
	Street       string `dynamodbav:"street"`
	Number       string `dynamodbav:"number"`
	Complement   string `dynamodbav:"complement,omitempty"`
	Neighborhood string `dynamodbav:"neighborhood"`
	City         string `dynamodbav:"city"`
	State        string `dynamodbav:"state"`

	Quantity      int    `dynamodbav:"quantity"`
	OptionLabel   string `dynamodbav:"option_label"`
	ProductPrice  string `dynamodbav:"product_price"`
	ShippingPrice string `dynamodbav:"shipping_price"`
	TotalPrice    string `dynamodbav:"total_price"`

	Status         string `dynamodbav:"status"`
	PaymentEventID string `dynamodbav:"payment_event_id,omitempty"`
	PaymentSource  string `dynamodbav:"payment_source,omitempty"`
	TrackingCode   string `dynamodbav:"tracking_code,omitempty"`

	// Index key attributes must be absent rather than empty.
	PixCode          string `dynamodbav:"pix_code,omitempty"`
	PixQRCodeBase64  string `dynamodbav:"pix_qr_code_base64,omitempty"`
	PixQRCodeURL     string `dynamodbav:"pix_qr_code_url,omitempty"`
	PixTransactionID string `dynamodbav:"pix_transaction_id,omitempty"`
	PixGateway       string `dynamodbav:"pix_gateway,omitempty"`
	PixAmount        string `dynamodbav:"pix_amount,omitempty"`
	PixGeneratedAt   string `dynamodbav:"pix_generated_at,omitempty"`
	PixExpiresAt     string `dynamodbav:"pix_expires_at,omitempty"`

	CreatedAt   string `dynamodbav:"created_at"`
	UpdatedAt   string `dynamodbav:"updated_at"`
	PaidAt      string `dynamodbav:"paid_at,omitempty"`
	ShippedAt   string `dynamodbav:"shipped_at,omitempty"`
	DeliveredAt string `dynamodbav:"delivered_at,omitempty"`
}

// OrderDynamoRepository persists Order entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: order_number-index (PK: order_number)
//   - GSI: pix_transaction_id-index (PK: pix_transaction_id)
//   - GSI: email-index (PK: email)
//
// Status and PIX writes are conditional updates, so two concurrent confirmations of the same order
// cannot both apply.
type OrderDynamoRepository struct {
	ddb       dynamoAPI
	tableName string
}

var _ interfaces.IOrderRepository = (*OrderDynamoRepository)(nil)

func NewOrderDynamoRepository(ddb *dynamodb.Client, tableName string) *OrderDynamoRepository {
	return newOrderDynamoRepository(ddb, tableName)
}

func newOrderDynamoRepository(ddb dynamoAPI, tableName string) *OrderDynamoRepository {
	if tableName == "" {
		tableName = defaultOrdersTableName
	}
	return &OrderDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *OrderDynamoRepository) Create(ctx context.Context, o entities.Order) (entities.Order, error) {
	av, err := attributevalue.MarshalMap(toOrderItem(o))
	if err != nil {
		return entities.Order{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.Order{}, err
	}
	return o, nil
}

func (r *OrderDynamoRepository) GetByID(ctx context.Context, id string) (entities.Order, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            orderKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Order{}, err
	}
	return decodeOrder(out.Item)
}

// GetByOrderNumber reads the order number index. GSI reads are eventually consistent, so an order
// created moments ago may not be visible yet; callers that just created it should use GetByID.
func (r *OrderDynamoRepository) GetByOrderNumber(ctx context.Context, orderNumber string) (entities.Order, error) {
	return r.queryOne(ctx, database.OrderNumberIndex, "order_number", orderNumber)
}

func (r *OrderDynamoRepository) GetByPixTransactionID(ctx context.Context, transactionID string) (entities.Order, error) {
	return r.queryOne(ctx, database.PixTransactionIDIndex, "pix_transaction_id", transactionID)
}

// FindLatestPendingByEmail reads every order of the buyer; one buyer has a handful at most.
func (r *OrderDynamoRepository) FindLatestPendingByEmail(ctx context.Context, email string) (entities.Order, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return entities.Order{}, nil
	}
	p := dynamodb.NewQueryPaginator(r.ddb, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(database.EmailIndex),
		KeyConditionExpression: aws.String("#email = :email"),
		FilterExpression:       aws.String("#status = :pending"),
		ExpressionAttributeNames: map[string]string{
			"#email":  "email",
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":email":   &types.AttributeValueMemberS{Value: email},
			":pending": &types.AttributeValueMemberS{Value: string(entities.OrderStatusPending)},
		},
	})

	var latest entities.Order
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return entities.Order{}, err
		}
		for _, raw := range page.Items {
			o, err := decodeOrder(raw)
			if err != nil {
				return entities.Order{}, err
			}
			if latest.ID == "" || o.CreatedAt.After(latest.CreatedAt) {
				latest = o
			}
		}
	}
	return latest, nil
}

// List scans the table; ordering is applied by the caller.
func (r *OrderDynamoRepository) List(ctx context.Context, filter entities.OrderListFilter) ([]entities.Order, error) {
	in := &dynamodb.ScanInput{TableName: aws.String(r.tableName)}
	if filter.Status != "" {
		in.FilterExpression = aws.String("#status = :status")
		in.ExpressionAttributeNames = map[string]string{"#status": "status"}
		in.ExpressionAttributeValues = map[string]types.AttributeValue{
			":status": &types.AttributeValueMemberS{Value: string(filter.Status)},
		}
	}

	orders := make([]entities.Order, 0)
	p := dynamodb.NewScanPaginator(r.ddb, in)
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, raw := range page.Items {
			o, err := decodeOrder(raw)
			if err != nil {
				return nil, err
			}
			orders = append(orders, o)
		}
	}
	return orders, nil
}

func (r *OrderDynamoRepository) UpdateStatus(ctx context.Context, o entities.Order, expected entities.OrderStatus) (entities.Order, bool, error) {
	it := toOrderItem(o)
	sets := []string{"#status = :status", "#updated_at = :updated_at"}
	names := map[string]string{"#status": "status", "#updated_at": "updated_at"}
	values := map[string]types.AttributeValue{
		":status":     &types.AttributeValueMemberS{Value: it.Status},
		":updated_at": &types.AttributeValueMemberS{Value: it.UpdatedAt},
		":expected":   &types.AttributeValueMemberS{Value: string(expected)},
	}
	optional := []struct{ attr, value string }{
		{"paid_at", it.PaidAt},
		{"shipped_at", it.ShippedAt},
		{"delivered_at", it.DeliveredAt},
		{"payment_event_id", it.PaymentEventID},
		{"payment_source", it.PaymentSource},
		{"tracking_code", it.TrackingCode},
	}
	for _, f := range optional {
		if f.value == "" {
			continue
		}
		sets = append(sets, "#"+f.attr+" = :"+f.attr)
		names["#"+f.attr] = f.attr
		values[":"+f.attr] = &types.AttributeValueMemberS{Value: f.value}
	}

	return r.conditionalUpdate(ctx, o.ID, "SET "+strings.Join(sets, ", "), "attribute_exists(#id) AND #status = :expected", names, values)
}

func (r *OrderDynamoRepository) SavePixPayment(ctx context.Context, id string, pix entities.PixPayment, now time.Time) (entities.Order, bool, error) {
	fields := []struct{ attr, value string }{
		{"pix_code", pix.Code},
		{"pix_qr_code_base64", pix.QRCodeBase64},
		{"pix_qr_code_url", pix.QRCodeURL},
		{"pix_transaction_id", pix.TransactionID},
		{"pix_gateway", pix.Gateway},
		{"pix_amount", floatToString(pix.Amount)},
		{"pix_generated_at", formatTime(pix.GeneratedAt)},
		{"pix_expires_at", formatTime(pix.ExpiresAt)},
		{"updated_at", formatTime(now)},
	}
	var sets, removes []string
	names := map[string]string{"#status": "status"}
	values := map[string]types.AttributeValue{
		":pending": &types.AttributeValueMemberS{Value: string(entities.OrderStatusPending)},
		":now":     &types.AttributeValueMemberS{Value: formatTime(now)},
	}
	for _, f := range fields {
		names["#"+f.attr] = f.attr
		if f.value == "" {
			removes = append(removes, "#"+f.attr)
			continue
		}
		sets = append(sets, "#"+f.attr+" = :"+f.attr)
		values[":"+f.attr] = &types.AttributeValueMemberS{Value: f.value}
	}
	expr := "SET " + strings.Join(sets, ", ")
	if len(removes) > 0 {
		expr += " REMOVE " + strings.Join(removes, ", ")
	}

	// Timestamps share one fixed-width layout, so string comparison orders them.
	cond := "attribute_exists(#id) AND #status = :pending AND (attribute_not_exists(#pix_expires_at) OR #pix_expires_at <= :now)"
	return r.conditionalUpdate(ctx, id, expr, cond, names, values)
}

func (r *OrderDynamoRepository) conditionalUpdate(
	ctx context.Context,
	id string,
	updateExpr string,
	condition string,
	names map[string]string,
	values map[string]types.AttributeValue,
) (entities.Order, bool, error) {
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                           aws.String(r.tableName),
		Key:                                 orderKey(id),
		ConditionExpression:                 aws.String(condition),
		UpdateExpression:                    aws.String(updateExpr),
		ExpressionAttributeValues:           values,
		ExpressionAttributeNames:            mergeNames(names, map[string]string{"#id": "id"}),
		ReturnValues:                        types.ReturnValueAllNew,
		ReturnValuesOnConditionCheckFailure: types.ReturnValuesOnConditionCheckFailureAllOld,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			if len(cfe.Item) > 0 {
				stored, derr := decodeOrder(cfe.Item)
				return stored, false, derr
			}
			stored, gerr := r.GetByID(ctx, id)
			return stored, false, gerr
		}
		return entities.Order{}, false, err
	}
	stored, err := decodeOrder(out.Attributes)
	if err != nil {
		return entities.Order{}, false, err
	}
	return stored, true, nil
}

func (r *OrderDynamoRepository) queryOne(ctx context.Context, index, attr, value string) (entities.Order, error) {
	if strings.TrimSpace(value) == "" {
		return entities.Order{}, nil
	}
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(index),
		KeyConditionExpression: aws.String("#k = :v"),
		ExpressionAttributeNames: map[string]string{
			"#k": attr,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":v": &types.AttributeValueMemberS{Value: value},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return entities.Order{}, err
	}
	if len(out.Items) == 0 {
		return entities.Order{}, nil
	}
	return decodeOrder(out.Items[0])
}

func orderKey(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberS{Value: id},
	}
}

func decodeOrder(raw map[string]types.AttributeValue) (entities.Order, error) {
	if len(raw) == 0 {
		return entities.Order{}, nil
	}
	var it orderItem
	if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
		return entities.Order{}, err
	}
	return fromOrderItem(it), nil
}

func toOrderItem(o entities.Order) orderItem {
	it := orderItem{
		ID:             o.ID,
		OrderNumber:    o.OrderNumber,
		Name:           o.Name,
		Email:          o.Email,
		Phone:          o.Phone,
		CEP:            o.CEP,
		Street:         o.Street,
		Number:         o.Number,
		Complement:     o.Complement,
		Neighborhood:   o.Neighborhood,
		City:           o.City,
		State:          o.State,
		Quantity:       o.Quantity,
		OptionLabel:    o.OptionLabel,
		ProductPrice:   floatToString(o.ProductPrice),
		ShippingPrice:  floatToString(o.ShippingPrice),
		TotalPrice:     floatToString(o.TotalPrice),
		Status:         string(o.Status),
		PaymentEventID: o.PaymentEventID,
		PaymentSource:  o.PaymentSource,
		TrackingCode:   o.TrackingCode,
		CreatedAt:      formatTime(o.CreatedAt),
		UpdatedAt:      formatTime(o.UpdatedAt),
		PaidAt:         formatTimePtr(o.PaidAt),
		ShippedAt:      formatTimePtr(o.ShippedAt),
		DeliveredAt:    formatTimePtr(o.DeliveredAt),
	}
	if o.Pix != nil {
		it.PixCode = o.Pix.Code
		it.PixQRCodeBase64 = o.Pix.QRCodeBase64
		it.PixQRCodeURL = o.Pix.QRCodeURL
		it.PixTransactionID = o.Pix.TransactionID
		it.PixGateway = o.Pix.Gateway
		it.PixAmount = floatToString(o.Pix.Amount)
		it.PixGeneratedAt = formatTime(o.Pix.GeneratedAt)
		it.PixExpiresAt = formatTime(o.Pix.ExpiresAt)
	}
	return it
}

func fromOrderItem(it orderItem) entities.Order {
	o := entities.Order{
		ID:             it.ID,
		OrderNumber:    it.OrderNumber,
		Name:           it.Name,
		Email:          it.Email,
		Phone:          it.Phone,
		CEP:            it.CEP,
		Street:         it.Street,
		Number:         it.Number,
		Complement:     it.Complement,
		Neighborhood:   it.Neighborhood,
		City:           it.City,
		State:          it.State,
		Quantity:       it.Quantity,
		OptionLabel:    it.OptionLabel,
		ProductPrice:   parseFloat(it.ProductPrice),
		ShippingPrice:  parseFloat(it.ShippingPrice),
		TotalPrice:     parseFloat(it.TotalPrice),
		Status:         entities.OrderStatus(it.Status),
		PaymentEventID: it.PaymentEventID,
		PaymentSource:  it.PaymentSource,
		TrackingCode:   it.TrackingCode,
		CreatedAt:      parseTime(it.CreatedAt),
		UpdatedAt:      parseTime(it.UpdatedAt),
		PaidAt:         parseTimePtr(it.PaidAt),
		ShippedAt:      parseTimePtr(it.ShippedAt),
		DeliveredAt:    parseTimePtr(it.DeliveredAt),
	}
	if it.PixCode != "" {
		o.Pix = &entities.PixPayment{
			Code:          it.PixCode,
			QRCodeBase64:  it.PixQRCodeBase64,
			QRCodeURL:     it.PixQRCodeURL,
			TransactionID: it.PixTransactionID,
			Gateway:       it.PixGateway,
			Amount:        parseFloat(it.PixAmount),
			GeneratedAt:   parseTime(it.PixGeneratedAt),
			ExpiresAt:     parseTime(it.PixExpiresAt),
		}
	}
	return o
}
