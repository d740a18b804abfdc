// Package models contains the persistence records for the exhibition and
// certificate workflows, configured to work using GORM as the ORM.
package models

// CompanyRecord is one position of an owner's bounded company list. The list
// for an owner is the set of its rows ordered by position; a put replaces
// all of them.
type CompanyRecord struct {
	Owner         []byte `gorm:"primaryKey;size:32"`
	Position      int    `gorm:"primaryKey;autoIncrement:false"`
	CompanyID     []byte `gorm:"size:16;index"`
	Name          string `gorm:"size:240"`
	Address       string `gorm:"size:240"`
	Contact       string `gorm:"size:60"`
	Email         string `gorm:"size:30"`
	Mobile        string `gorm:"size:30"`
	BusinessScope string `gorm:"size:1024"`
}

// ApplyRecord is one position of a company's bounded exhibition apply list.
type ApplyRecord struct {
	CompanyID  []byte `gorm:"primaryKey;size:16"`
	Position   int    `gorm:"primaryKey;autoIncrement:false"`
	ApplyID    []byte `gorm:"size:24;index"`
	Exhibition string `gorm:"size:20"`
	Status     string `gorm:"size:20"`
	CertQuota  uint8
	Reason     string `gorm:"size:240"`
	Purpose    string `gorm:"size:20"`
	Exhibits   string `gorm:"size:1024"`
	BoothKind  string `gorm:"size:20"`
	BoothValue uint32
}

// DirectApplyRecord is an exhibition apply keyed directly by its id, the key
// space the certificate workflow reads.
type DirectApplyRecord struct {
	ApplyID    []byte `gorm:"primaryKey;size:24"`
	CompanyID  []byte `gorm:"size:16;index"`
	Exhibition string `gorm:"size:20"`
	Status     string `gorm:"size:20"`
	CertQuota  uint8
	Reason     string `gorm:"size:240"`
	Purpose    string `gorm:"size:20"`
	Exhibits   string `gorm:"size:1024"`
	BoothKind  string `gorm:"size:20"`
	BoothValue uint32
}

// CertRecord is a certificate apply keyed by its id.
type CertRecord struct {
	CertID  []byte `gorm:"primaryKey;size:24"`
	ApplyID []byte `gorm:"size:24;index"`
	Status  string `gorm:"size:20"`
}
