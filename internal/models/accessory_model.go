package models

import "time"

// AccessoryModel is one device entry inside an accessory compatibility group.
// Entries submitted through the contribution workflow carry the contributor
// attribution; entries from bulk import may only have a name.
type AccessoryModel struct {
	Name            string `json:"name" firestore:"name"`
	ContributorUID  string `json:"contributorUid,omitempty" firestore:"contributorUid,omitempty"`
	ContributorName string `json:"contributorName,omitempty" firestore:"contributorName,omitempty"`
}

// ContributorSummary identifies the user that created an accessory group.
type ContributorSummary struct {
	UID         string `json:"uid,omitempty" firestore:"uid,omitempty"`
	DisplayName string `json:"displayName,omitempty" firestore:"displayName,omitempty"`
}

// Accessory represents a compatibility group: an accessory category together
// with the set of device models it fits.
type Accessory struct {
	ID            string             `json:"id" firestore:"-"` // Document ID, auto-generated
	AccessoryType string             `json:"accessoryType" firestore:"accessoryType"`
	Models        []AccessoryModel   `json:"models" firestore:"models"`
	Contributor   ContributorSummary `json:"contributor,omitempty" firestore:"contributor,omitempty"`
	LastUpdated   time.Time          `json:"lastUpdated" firestore:"lastUpdated,serverTimestamp"`
	Source        string             `json:"source,omitempty" firestore:"source,omitempty"`
}

// NormalizeModelEntries converts the raw Firestore value of the "models" field
// into AccessoryModel entries. Two encodings coexist in production data: plain
// strings and {name, contributorUid, contributorName} maps. Unknown shapes are
// skipped rather than failing the whole document.
func NormalizeModelEntries(raw []interface{}) []AccessoryModel {
	entries := make([]AccessoryModel, 0, len(raw))
	for _, item := range raw {
		switch v := item.(type) {
		case string:
			if v == "" {
				continue
			}
			entries = append(entries, AccessoryModel{Name: v})
		case map[string]interface{}:
			name, _ := v["name"].(string)
			if name == "" {
				continue
			}
			uid, _ := v["contributorUid"].(string)
			contributorName, _ := v["contributorName"].(string)
			entries = append(entries, AccessoryModel{
				Name:            name,
				ContributorUID:  uid,
				ContributorName: contributorName,
			})
		}
	}
	return entries
}

// ModelNames returns the plain names of the group's entries, in stored order.
func (a *Accessory) ModelNames() []string {
	names := make([]string, 0, len(a.Models))
	for _, m := range a.Models {
		names = append(names, m.Name)
	}
	return names
}
