package graphql

import (
	"github.com/graphql-go/graphql"
)

// NewSchema builds the executable schema backed by the given resolver
func NewSchema(r *Resolver) (graphql.Schema, error) {
	userType := graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.Fields{
			"id":    &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"email": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"name":  &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	accountType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Account",
		Fields: graphql.Fields{
			"id":        &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"name":      &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"broker":    &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"currency":  &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"createdAt": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	holdingType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Holding",
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"accountId":   &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"symbol":      &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"market":      &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"name":        &graphql.Field{Type: graphql.String},
			"quantity":    &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
			"lastPrice":   &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
			"marketValue": &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
			"currency":    &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"source":      &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"updatedAt":   &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	tagType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Tag",
		Fields: graphql.Fields{
			"id":    &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"name":  &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"color": &graphql.Field{Type: graphql.String},
		},
	})

	groupType := graphql.NewObject(graphql.ObjectConfig{
		Name: "RebalancingGroup",
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"name":        &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"description": &graphql.Field{Type: graphql.String},
			"tagIds":      &graphql.Field{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(graphql.ID)))},
			"createdAt":   &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"updatedAt":   &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	tagAllocationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "TagAllocation",
		Fields: graphql.Fields{
			"tagId":             &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"tagName":           &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"tagColor":          &graphql.Field{Type: graphql.String},
			"currentValue":      &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
			"currentPercentage": &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
			"targetPercentage":  &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
			"difference":        &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
		},
	})

	analysisType := graphql.NewObject(graphql.ObjectConfig{
		Name: "RebalancingAnalysis",
		Fields: graphql.Fields{
			"groupId":     &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"groupName":   &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"totalValue":  &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
			"allocations": &graphql.Field{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(tagAllocationType)))},
			"lastUpdated": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	recommendationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "InvestmentRecommendation",
		Fields: graphql.Fields{
			"tagId":                 &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"tagName":               &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"recommendedAmount":     &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
			"recommendedPercentage": &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
			"suggestedSymbols":      &graphql.Field{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(graphql.String)))},
		},
	})

	recommendationInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "InvestmentRecommendationInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"groupId":          &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.ID)},
			"investmentAmount": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Float)},
		},
	})

	createAccountInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "CreateAccountInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"name":     &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"broker":   &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"currency": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	createHoldingInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "CreateHoldingInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"accountId":   &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.ID)},
			"symbol":      &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"market":      &graphql.InputObjectFieldConfig{Type: graphql.String},
			"name":        &graphql.InputObjectFieldConfig{Type: graphql.String},
			"quantity":    &graphql.InputObjectFieldConfig{Type: graphql.Float},
			"marketValue": &graphql.InputObjectFieldConfig{Type: graphql.Float},
			"source":      &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})

	updateHoldingInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "UpdateHoldingInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"name":        &graphql.InputObjectFieldConfig{Type: graphql.String},
			"quantity":    &graphql.InputObjectFieldConfig{Type: graphql.Float},
			"marketValue": &graphql.InputObjectFieldConfig{Type: graphql.Float},
		},
	})

	createTagInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "CreateTagInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"name":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"color": &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})

	updateTagInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "UpdateTagInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"name":  &graphql.InputObjectFieldConfig{Type: graphql.String},
			"color": &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})

	setTagSymbolsInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "SetTagSymbolsInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"tagId":   &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.ID)},
			"symbols": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(graphql.String)))},
		},
	})

	createGroupInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "CreateRebalancingGroupInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"name":        &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"description": &graphql.InputObjectFieldConfig{Type: graphql.String},
			"tagIds":      &graphql.InputObjectFieldConfig{Type: graphql.NewList(graphql.NewNonNull(graphql.ID))},
		},
	})

	updateGroupInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "UpdateRebalancingGroupInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"name":        &graphql.InputObjectFieldConfig{Type: graphql.String},
			"description": &graphql.InputObjectFieldConfig{Type: graphql.String},
			"tagIds":      &graphql.InputObjectFieldConfig{Type: graphql.NewList(graphql.NewNonNull(graphql.ID))},
		},
	})

	targetAllocationInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "TargetAllocationInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"tagId":            &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.ID)},
			"targetPercentage": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Float)},
		},
	})

	setTargetAllocationsInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "SetTargetAllocationsInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"groupId": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.ID)},
			"targets": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(targetAllocationInput)))},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"me": &graphql.Field{
				Type:    graphql.NewNonNull(userType),
				Resolve: r.resolveMe,
			},
			"accounts": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(accountType))),
				Resolve: r.resolveAccounts,
			},
			"holdings": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(holdingType))),
				Resolve: r.resolveHoldings,
			},
			"tags": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(tagType))),
				Resolve: r.resolveTags,
			},
			"rebalancingGroups": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(groupType))),
				Resolve: r.resolveGroups,
			},
			"rebalancingGroup": &graphql.Field{
				Type: groupType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: r.resolveGroup,
			},
			"rebalancingAnalysis": &graphql.Field{
				Type: analysisType,
				Args: graphql.FieldConfigArgument{
					"groupId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: r.resolveAnalysis,
			},
			"investmentRecommendation": &graphql.Field{
				Type: graphql.NewList(graphql.NewNonNull(recommendationType)),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(recommendationInput)},
				},
				Resolve: r.resolveRecommendation,
			},
		},
	})

	mutationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"createAccount": &graphql.Field{
				Type: accountType,
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(createAccountInput)},
				},
				Resolve: r.resolveCreateAccount,
			},
			"deleteAccount": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Boolean),
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: r.resolveDeleteAccount,
			},
			"createHolding": &graphql.Field{
				Type: holdingType,
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(createHoldingInput)},
				},
				Resolve: r.resolveCreateHolding,
			},
			"updateHolding": &graphql.Field{
				Type: holdingType,
				Args: graphql.FieldConfigArgument{
					"id":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(updateHoldingInput)},
				},
				Resolve: r.resolveUpdateHolding,
			},
			"deleteHolding": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Boolean),
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: r.resolveDeleteHolding,
			},
			"createTag": &graphql.Field{
				Type: tagType,
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(createTagInput)},
				},
				Resolve: r.resolveCreateTag,
			},
			"updateTag": &graphql.Field{
				Type: tagType,
				Args: graphql.FieldConfigArgument{
					"id":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(updateTagInput)},
				},
				Resolve: r.resolveUpdateTag,
			},
			"deleteTag": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Boolean),
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: r.resolveDeleteTag,
			},
			"setTagSymbols": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Boolean),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(setTagSymbolsInput)},
				},
				Resolve: r.resolveSetTagSymbols,
			},
			"createRebalancingGroup": &graphql.Field{
				Type: groupType,
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(createGroupInput)},
				},
				Resolve: r.resolveCreateGroup,
			},
			"updateRebalancingGroup": &graphql.Field{
				Type: groupType,
				Args: graphql.FieldConfigArgument{
					"id":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(updateGroupInput)},
				},
				Resolve: r.resolveUpdateGroup,
			},
			"deleteRebalancingGroup": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Boolean),
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: r.resolveDeleteGroup,
			},
			"setTargetAllocations": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Boolean),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(setTargetAllocationsInput)},
				},
				Resolve: r.resolveSetTargetAllocations,
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    queryType,
		Mutation: mutationType,
	})
}
