package mongodb

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/mamadbah2/coopledger/internal/domain/models"
)

// productionLogUpdateDoc translates the optional-field update into a $set document.
func productionLogUpdateDoc(u models.ProductionLogUpdate) bson.M {
	set := bson.M{}
	if u.Date != nil {
		set["date"] = *u.Date
	}
	if u.BatchPeriod != nil {
		set["batch_period"] = *u.BatchPeriod
	}
	if u.TotalProduction != nil {
		set["total_production"] = *u.TotalProduction
	}
	if u.GradeAPercent != nil {
		set["grade_a_percent"] = *u.GradeAPercent
	}
	if u.GradeBPercent != nil {
		set["grade_b_percent"] = *u.GradeBPercent
	}
	if u.LossPercent != nil {
		set["post_harvest_loss_percent"] = *u.LossPercent
	}
	if u.LossKg != nil {
		set["post_harvest_loss_kg"] = *u.LossKg
	}
	if u.EnergyUse != nil {
		set["energy_use"] = *u.EnergyUse
	}
	if u.HasNonconformity != nil {
		set["has_nonconformity"] = *u.HasNonconformity
	}
	if u.NonconformityDescription != nil {
		set["nonconformity_description"] = *u.NonconformityDescription
	}
	if u.CorrectiveAction != nil {
		set["corrective_action"] = *u.CorrectiveAction
	}
	return withOperators(set, nil)
}

// nonconformityUpdateDoc builds $set and, when the issue leaves the closed state, $unset.
func nonconformityUpdateDoc(u models.NonconformityUpdate) bson.M {
	set := bson.M{}
	if u.Category != nil {
		set["category"] = *u.Category
	}
	if u.Severity != nil {
		set["severity"] = *u.Severity
	}
	if u.Description != nil {
		set["description"] = *u.Description
	}
	if u.CorrectiveAction != nil {
		set["corrective_action"] = *u.CorrectiveAction
	}
	if u.Status != nil {
		set["status"] = *u.Status
	}
	if u.AssignedTo != nil {
		set["assigned_to"] = *u.AssignedTo
	}
	if u.ClosedDate != nil {
		set["closed_date"] = *u.ClosedDate
	}

	unset := bson.M{}
	if u.ClearClosedDate {
		unset["closed_date"] = ""
	}
	return withOperators(set, unset)
}

// userUpdateDoc maps a user update; an empty cooperative id removes the affiliation.
func userUpdateDoc(u models.UserUpdate) bson.M {
	set := bson.M{}
	unset := bson.M{}
	if u.Email != nil {
		set["email"] = *u.Email
	}
	if u.Name != nil {
		set["name"] = *u.Name
	}
	if u.Role != nil {
		set["role"] = *u.Role
	}
	if u.CooperativeID != nil {
		if *u.CooperativeID == "" {
			unset["cooperative_id"] = ""
		} else {
			set["cooperative_id"] = *u.CooperativeID
		}
	}
	if u.PasswordHash != nil {
		set["password"] = *u.PasswordHash
	}
	return withOperators(set, unset)
}

func withOperators(set, unset bson.M) bson.M {
	doc := bson.M{}
	if len(set) > 0 {
		doc["$set"] = set
	}
	if len(unset) > 0 {
		doc["$unset"] = unset
	}
	return doc
}
