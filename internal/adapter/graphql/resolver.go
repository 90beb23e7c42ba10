package graphql

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/graphql-go/graphql"
	"github.com/shopspring/decimal"

	"github.com/portfolio-rebalancer/backend/internal/domain"
	"github.com/portfolio-rebalancer/backend/internal/usecase/account"
	"github.com/portfolio-rebalancer/backend/internal/usecase/holding"
	"github.com/portfolio-rebalancer/backend/internal/usecase/rebalancing"
	"github.com/portfolio-rebalancer/backend/internal/usecase/tag"
)

// Resolver bridges the GraphQL schema to the usecase services
type Resolver struct {
	Accounts    *account.Service
	Holdings    *holding.Service
	Tags        *tag.Service
	Rebalancing *rebalancing.Service
}

// NewResolver creates a new Resolver instance
func NewResolver(
	accounts *account.Service,
	holdings *holding.Service,
	tags *tag.Service,
	rebalancingService *rebalancing.Service,
) *Resolver {
	return &Resolver{
		Accounts:    accounts,
		Holdings:    holdings,
		Tags:        tags,
		Rebalancing: rebalancingService,
	}
}

// currentUser pulls the authenticated user off the resolver context
func currentUser(p graphql.ResolveParams) (*domain.User, error) {
	user, ok := UserFromContext(p.Context)
	if !ok {
		return nil, errors.New("no authenticated user on request context")
	}
	return user, nil
}

// parseID coerces a GraphQL ID argument into a uuid
func parseID(value interface{}) (uuid.UUID, error) {
	s, ok := value.(string)
	if !ok {
		return uuid.Nil, domain.NewValidationError(fmt.Sprintf("invalid id: %v", value))
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, domain.NewValidationError(fmt.Sprintf("invalid id: %s", s))
	}
	return id, nil
}

// parseDecimal coerces a GraphQL Float argument into a decimal
func parseDecimal(value interface{}) (decimal.Decimal, error) {
	switch v := value.(type) {
	case float64:
		return decimal.NewFromFloat(v), nil
	case int:
		return decimal.NewFromInt(int64(v)), nil
	default:
		return decimal.Zero, domain.NewValidationError(fmt.Sprintf("invalid amount: %v", value))
	}
}

// optionalString reads an optional string field from an input map
func optionalString(input map[string]interface{}, key string) *string {
	if value, ok := input[key].(string); ok {
		return &value
	}
	return nil
}

// DTOs returned to graphql-go; field resolution follows the json tags.

type userDTO struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type accountDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Broker    string `json:"broker"`
	Currency  string `json:"currency"`
	CreatedAt string `json:"createdAt"`
}

type holdingDTO struct {
	ID          string  `json:"id"`
	AccountID   string  `json:"accountId"`
	Symbol      string  `json:"symbol"`
	Market      string  `json:"market"`
	Name        string  `json:"name"`
	Quantity    float64 `json:"quantity"`
	LastPrice   float64 `json:"lastPrice"`
	MarketValue float64 `json:"marketValue"`
	Currency    string  `json:"currency"`
	Source      string  `json:"source"`
	UpdatedAt   string  `json:"updatedAt"`
}

type tagDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

type groupDTO struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	TagIDs      []string `json:"tagIds"`
	CreatedAt   string   `json:"createdAt"`
	UpdatedAt   string   `json:"updatedAt"`
}

type tagAllocationDTO struct {
	TagID             string  `json:"tagId"`
	TagName           string  `json:"tagName"`
	TagColor          string  `json:"tagColor"`
	CurrentValue      float64 `json:"currentValue"`
	CurrentPercentage float64 `json:"currentPercentage"`
	TargetPercentage  float64 `json:"targetPercentage"`
	Difference        float64 `json:"difference"`
}

type analysisDTO struct {
	GroupID     string             `json:"groupId"`
	GroupName   string             `json:"groupName"`
	TotalValue  float64            `json:"totalValue"`
	Allocations []tagAllocationDTO `json:"allocations"`
	LastUpdated string             `json:"lastUpdated"`
}

type recommendationDTO struct {
	TagID                 string   `json:"tagId"`
	TagName               string   `json:"tagName"`
	RecommendedAmount     float64  `json:"recommendedAmount"`
	RecommendedPercentage float64  `json:"recommendedPercentage"`
	SuggestedSymbols      []string `json:"suggestedSymbols"`
}

func toAccountDTO(a *domain.Account) accountDTO {
	return accountDTO{
		ID:        a.ID.String(),
		Name:      a.Name,
		Broker:    a.Broker,
		Currency:  a.Currency,
		CreatedAt: a.CreatedAt.Format(time.RFC3339),
	}
}

func toHoldingDTO(h *domain.Holding) holdingDTO {
	return holdingDTO{
		ID:          h.ID.String(),
		AccountID:   h.AccountID.String(),
		Symbol:      h.Symbol,
		Market:      h.Market,
		Name:        h.Name,
		Quantity:    h.Quantity.InexactFloat64(),
		LastPrice:   h.LastPrice.InexactFloat64(),
		MarketValue: h.MarketValue.InexactFloat64(),
		Currency:    h.Currency,
		Source:      string(h.Source),
		UpdatedAt:   h.UpdatedAt.Format(time.RFC3339),
	}
}

func toTagDTO(t *domain.Tag) tagDTO {
	return tagDTO{ID: t.ID.String(), Name: t.Name, Color: t.Color}
}

func toGroupDTO(g *domain.RebalancingGroup) groupDTO {
	tagIDs := make([]string, len(g.TagIDs))
	for i, id := range g.TagIDs {
		tagIDs[i] = id.String()
	}
	return groupDTO{
		ID:          g.ID.String(),
		Name:        g.Name,
		Description: g.Description,
		TagIDs:      tagIDs,
		CreatedAt:   g.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   g.UpdatedAt.Format(time.RFC3339),
	}
}

func toAnalysisDTO(a *domain.RebalancingAnalysis) analysisDTO {
	allocations := make([]tagAllocationDTO, len(a.Allocations))
	for i, alloc := range a.Allocations {
		allocations[i] = tagAllocationDTO{
			TagID:             alloc.TagID.String(),
			TagName:           alloc.TagName,
			TagColor:          alloc.TagColor,
			CurrentValue:      alloc.CurrentValue.InexactFloat64(),
			CurrentPercentage: alloc.CurrentPercentage.InexactFloat64(),
			TargetPercentage:  alloc.TargetPercentage.InexactFloat64(),
			Difference:        alloc.Difference.InexactFloat64(),
		}
	}
	return analysisDTO{
		GroupID:     a.GroupID.String(),
		GroupName:   a.GroupName,
		TotalValue:  a.TotalValue.InexactFloat64(),
		Allocations: allocations,
		LastUpdated: a.LastUpdated.Format(time.RFC3339),
	}
}

func toRecommendationDTO(r domain.InvestmentRecommendation) recommendationDTO {
	symbols := r.SuggestedSymbols
	if symbols == nil {
		symbols = []string{}
	}
	return recommendationDTO{
		TagID:                 r.TagID.String(),
		TagName:               r.TagName,
		RecommendedAmount:     r.RecommendedAmount.InexactFloat64(),
		RecommendedPercentage: r.RecommendedPercentage.InexactFloat64(),
		SuggestedSymbols:      symbols,
	}
}

// --- query resolvers ---

func (r *Resolver) resolveMe(p graphql.ResolveParams) (interface{}, error) {
	user, err := currentUser(p)
	if err != nil {
		return nil, err
	}
	return userDTO{ID: user.ID.String(), Email: user.Email, Name: user.Name}, nil
}

func (r *Resolver) resolveAccounts(p graphql.ResolveParams) (interface{}, error) {
	user, err := currentUser(p)
	if err != nil {
		return nil, err
	}
	accounts, err := r.Accounts.ListAccounts(p.Context, user.ID)
	if err != nil {
		return nil, err
	}
	dtos := make([]accountDTO, len(accounts))
	for i, a := range accounts {
		dtos[i] = toAccountDTO(a)
	}
	return dtos, nil
}

func (r *Resolver) resolveHoldings(p graphql.ResolveParams) (interface{}, error) {
	user, err := currentUser(p)
	if err != nil {
		return nil, err
	}
	holdings, err := r.Holdings.ListHoldings(p.Context, user.ID)
	if err != nil {
		return nil, err
	}
	dtos := make([]holdingDTO, len(holdings))
	for i, h := range holdings {
		dtos[i] = toHoldingDTO(h)
	}
	return dtos, nil
}

func (r *Resolver) resolveTags(p graphql.ResolveParams) (interface{}, error) {
	user, err := currentUser(p)
	if err != nil {
		return nil, err
	}
	tags, err := r.Tags.ListTags(p.Context, user.ID)
	if err != nil {
		return nil, err
	}
	dtos := make([]tagDTO, len(tags))
	for i, t := range tags {
		dtos[i] = toTagDTO(t)
	}
	return dtos, nil
}

func (r *Resolver) resolveGroups(p graphql.ResolveParams) (interface{}, error) {
	user, err := currentUser(p)
	if err != nil {
		return nil, err
	}
	groups, err := r.Rebalancing.ListGroups(p.Context, user.ID)
	if err != nil {
		return nil, err
	}
	dtos := make([]groupDTO, len(groups))
	for i, g := range groups {
		dtos[i] = toGroupDTO(g)
	}
	return dtos, nil
}

func (r *Resolver) resolveGroup(p graphql.ResolveParams) (interface{}, error) {
	user, err := currentUser(p)
	if err != nil {
		return nil, err
	}
	groupID, err := parseID(p.Args["id"])
	if err != nil {
		return nil, err
	}
	group, err := r.Rebalancing.GetGroup(p.Context, user.ID, groupID)
	if err != nil {
		return nil, err
	}
	return toGroupDTO(group), nil
}

func (r *Resolver) resolveAnalysis(p graphql.ResolveParams) (interface{}, error) {
	user, err := currentUser(p)
	if err != nil {
		return nil, err
	}
	groupID, err := parseID(p.Args["groupId"])
	if err != nil {
		return nil, err
	}
	analysis, err := r.Rebalancing.Analyze(p.Context, user.ID, groupID)
	if err != nil {
		return nil, err
	}
	return toAnalysisDTO(analysis), nil
}

func (r *Resolver) resolveRecommendation(p graphql.ResolveParams) (interface{}, error) {
	user, err := currentUser(p)
	if err != nil {
		return nil, err
	}
	input, _ := p.Args["input"].(map[string]interface{})
	groupID, err := parseID(input["groupId"])
	if err != nil {
		return nil, err
	}
	amount, err := parseDecimal(input["investmentAmount"])
	if err != nil {
		return nil, err
	}
	recommendations, err := r.Rebalancing.Recommend(p.Context, user.ID, groupID, amount)
	if err != nil {
		return nil, err
	}
	dtos := make([]recommendationDTO, len(recommendations))
	for i, rec := range recommendations {
		dtos[i] = toRecommendationDTO(rec)
	}
	return dtos, nil
}

// --- mutation resolvers ---

func (r *Resolver) resolveCreateAccount(p graphql.ResolveParams) (interface{}, error) {
	user, err := currentUser(p)
	if err != nil {
		return nil, err
	}
	input, _ := p.Args["input"].(map[string]interface{})
	name, _ := input["name"].(string)
	broker, _ := input["broker"].(string)
	currency, _ := input["currency"].(string)

	created, err := r.Accounts.CreateAccount(p.Context, user.ID, name, broker, currency)
	if err != nil {
		return nil, err
	}
	return toAccountDTO(created), nil
}

func (r *Resolver) resolveDeleteAccount(p graphql.ResolveParams) (interface{}, error) {
	user, err := currentUser(p)
	if err != nil {
		return nil, err
	}
	id, err := parseID(p.Args["id"])
	if err != nil {
		return nil, err
	}
	return r.Accounts.DeleteAccount(p.Context, user.ID, id)
}

func (r *Resolver) resolveCreateHolding(p graphql.ResolveParams) (interface{}, error) {
	user, err := currentUser(p)
	if err != nil {
		return nil, err
	}
	input, _ := p.Args["input"].(map[string]interface{})
	accountID, err := parseID(input["accountId"])
	if err != nil {
		return nil, err
	}

	create := holding.CreateHoldingInput{
		AccountID: accountID,
		Source:    domain.HoldingSourceManual,
	}
	create.Symbol, _ = input["symbol"].(string)
	create.Market, _ = input["market"].(string)
	create.Name, _ = input["name"].(string)
	if source, ok := input["source"].(string); ok {
		create.Source = domain.HoldingSource(source)
	}
	if quantity, ok := input["quantity"]; ok {
		if create.Quantity, err = parseDecimal(quantity); err != nil {
			return nil, err
		}
	}
	if marketValue, ok := input["marketValue"]; ok {
		if create.MarketValue, err = parseDecimal(marketValue); err != nil {
			return nil, err
		}
	}

	created, err := r.Holdings.CreateHolding(p.Context, user.ID, create)
	if err != nil {
		return nil, err
	}
	return toHoldingDTO(created), nil
}

func (r *Resolver) resolveUpdateHolding(p graphql.ResolveParams) (interface{}, error) {
	user, err := currentUser(p)
	if err != nil {
		return nil, err
	}
	id, err := parseID(p.Args["id"])
	if err != nil {
		return nil, err
	}
	input, _ := p.Args["input"].(map[string]interface{})

	update := holding.UpdateHoldingInput{Name: optionalString(input, "name")}
	if quantity, ok := input["quantity"]; ok {
		parsed, err := parseDecimal(quantity)
		if err != nil {
			return nil, err
		}
		update.Quantity = &parsed
	}
	if marketValue, ok := input["marketValue"]; ok {
		parsed, err := parseDecimal(marketValue)
		if err != nil {
			return nil, err
		}
		update.MarketValue = &parsed
	}

	updated, err := r.Holdings.UpdateHolding(p.Context, user.ID, id, update)
	if err != nil {
		return nil, err
	}
	return toHoldingDTO(updated), nil
}

func (r *Resolver) resolveDeleteHolding(p graphql.ResolveParams) (interface{}, error) {
	user, err := currentUser(p)
	if err != nil {
		return nil, err
	}
	id, err := parseID(p.Args["id"])
	if err != nil {
		return nil, err
	}
	return r.Holdings.DeleteHolding(p.Context, user.ID, id)
}

func (r *Resolver) resolveCreateTag(p graphql.ResolveParams) (interface{}, error) {
	user, err := currentUser(p)
	if err != nil {
		return nil, err
	}
	input, _ := p.Args["input"].(map[string]interface{})
	name, _ := input["name"].(string)
	color, _ := input["color"].(string)

	created, err := r.Tags.CreateTag(p.Context, user.ID, name, color)
	if err != nil {
		return nil, err
	}
	return toTagDTO(created), nil
}

func (r *Resolver) resolveUpdateTag(p graphql.ResolveParams) (interface{}, error) {
	user, err := currentUser(p)
	if err != nil {
		return nil, err
	}
	id, err := parseID(p.Args["id"])
	if err != nil {
		return nil, err
	}
	input, _ := p.Args["input"].(map[string]interface{})

	updated, err := r.Tags.UpdateTag(p.Context, user.ID, id, tag.UpdateTagInput{
		Name:  optionalString(input, "name"),
		Color: optionalString(input, "color"),
	})
	if err != nil {
		return nil, err
	}
	return toTagDTO(updated), nil
}

func (r *Resolver) resolveDeleteTag(p graphql.ResolveParams) (interface{}, error) {
	user, err := currentUser(p)
	if err != nil {
		return nil, err
	}
	id, err := parseID(p.Args["id"])
	if err != nil {
		return nil, err
	}
	return r.Tags.DeleteTag(p.Context, user.ID, id)
}

func (r *Resolver) resolveSetTagSymbols(p graphql.ResolveParams) (interface{}, error) {
	user, err := currentUser(p)
	if err != nil {
		return nil, err
	}
	input, _ := p.Args["input"].(map[string]interface{})
	tagID, err := parseID(input["tagId"])
	if err != nil {
		return nil, err
	}

	raw, _ := input["symbols"].([]interface{})
	symbols := make([]string, 0, len(raw))
	for _, s := range raw {
		if symbol, ok := s.(string); ok {
			symbols = append(symbols, symbol)
		}
	}

	if err := r.Tags.SetSymbols(p.Context, user.ID, tagID, symbols); err != nil {
		return nil, err
	}
	return true, nil
}

func (r *Resolver) resolveCreateGroup(p graphql.ResolveParams) (interface{}, error) {
	user, err := currentUser(p)
	if err != nil {
		return nil, err
	}
	input, _ := p.Args["input"].(map[string]interface{})

	create := rebalancing.CreateGroupInput{}
	create.Name, _ = input["name"].(string)
	create.Description, _ = input["description"].(string)
	if create.TagIDs, err = parseIDList(input["tagIds"]); err != nil {
		return nil, err
	}

	created, err := r.Rebalancing.CreateGroup(p.Context, user.ID, create)
	if err != nil {
		return nil, err
	}
	return toGroupDTO(created), nil
}

func (r *Resolver) resolveUpdateGroup(p graphql.ResolveParams) (interface{}, error) {
	user, err := currentUser(p)
	if err != nil {
		return nil, err
	}
	id, err := parseID(p.Args["id"])
	if err != nil {
		return nil, err
	}
	input, _ := p.Args["input"].(map[string]interface{})

	update := rebalancing.UpdateGroupInput{
		Name:        optionalString(input, "name"),
		Description: optionalString(input, "description"),
	}
	if _, present := input["tagIds"]; present {
		if update.TagIDs, err = parseIDList(input["tagIds"]); err != nil {
			return nil, err
		}
		if update.TagIDs == nil {
			update.TagIDs = []uuid.UUID{}
		}
	}

	updated, err := r.Rebalancing.UpdateGroup(p.Context, user.ID, id, update)
	if err != nil {
		return nil, err
	}
	return toGroupDTO(updated), nil
}

func (r *Resolver) resolveDeleteGroup(p graphql.ResolveParams) (interface{}, error) {
	user, err := currentUser(p)
	if err != nil {
		return nil, err
	}
	id, err := parseID(p.Args["id"])
	if err != nil {
		return nil, err
	}
	return r.Rebalancing.DeleteGroup(p.Context, user.ID, id)
}

func (r *Resolver) resolveSetTargetAllocations(p graphql.ResolveParams) (interface{}, error) {
	user, err := currentUser(p)
	if err != nil {
		return nil, err
	}
	input, _ := p.Args["input"].(map[string]interface{})
	groupID, err := parseID(input["groupId"])
	if err != nil {
		return nil, err
	}

	raw, _ := input["targets"].([]interface{})
	targets := make([]rebalancing.TargetInput, 0, len(raw))
	for _, item := range raw {
		entry, _ := item.(map[string]interface{})
		tagID, err := parseID(entry["tagId"])
		if err != nil {
			return nil, err
		}
		percentage, err := parseDecimal(entry["targetPercentage"])
		if err != nil {
			return nil, err
		}
		targets = append(targets, rebalancing.TargetInput{TagID: tagID, TargetPercentage: percentage})
	}

	if err := r.Rebalancing.SetTargetAllocations(p.Context, user.ID, groupID, targets); err != nil {
		return nil, err
	}
	return true, nil
}

// parseIDList coerces a GraphQL [ID] argument into uuids; nil input yields nil
func parseIDList(value interface{}) ([]uuid.UUID, error) {
	raw, ok := value.([]interface{})
	if !ok {
		return nil, nil
	}
	ids := make([]uuid.UUID, 0, len(raw))
	for _, item := range raw {
		id, err := parseID(item)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
