package models

// Stats are the four combat attributes of a character
type Stats struct {
	Strength     int `json:"strength"`
	Agility      int `json:"agility"`
	Intelligence int `json:"intelligence"`
	Faith        int `json:"faith"`
}

// CharacterSnapshot is a point-in-time read of a remote character
type CharacterSnapshot struct {
	// ID is the character identifier
	ID string `json:"id"`

	// Name is the character display name
	Name string `json:"name"`

	// OwnerUserID is the user that owns the character
	OwnerUserID string `json:"createdBy"`

	// Health is the character's current health, used as starting HP
	Health int `json:"health"`

	// Mana is carried for display only
	Mana int `json:"mana"`

	// ClassName is the character class
	ClassName string `json:"className"`

	// BaseStats are the class attributes before equipment
	BaseStats Stats `json:"baseStats"`

	// CalculatedStats are base stats plus every equipped item bonus
	CalculatedStats Stats `json:"calculatedStats"`

	// ItemInstances are the item instances the character holds
	ItemInstances []ItemInstance `json:"itemInstances"`
}

// ItemInstance is one owned copy of an item
type ItemInstance struct {
	InstanceID string `json:"instanceId"`
	ItemID     string `json:"itemId"`
	Name       string `json:"name,omitempty"`
	Bonus      Stats  `json:"bonus"`
}

// LootResult is the remote answer to a loot transfer request
type LootResult struct {
	// Transferred is nil when the loser held no items
	Transferred *LootTransfer `json:"transferred"`
}

// LootTransfer describes the item instance moved from loser to winner
type LootTransfer struct {
	ItemInstanceID string `json:"itemInstanceId"`
	ItemID         string `json:"itemId"`
	ItemName       string `json:"itemName,omitempty"`
	Bonus          Stats  `json:"bonus"`
}
