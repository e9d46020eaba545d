package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// CategoryDetails is the category-specific attribute bag of a property. Each
// category has its own variant; the variant must match the property's
// category.
type CategoryDetails interface {
	Category() Category
	Validate() error
}

// HouseDetails holds attributes specific to houses
type HouseDetails struct {
	LotSizeSqm       *float64 `json:"lotSizeSqm,omitempty" validate:"omitempty,gte=0"`
	ParkingSpaces    *int     `json:"parkingSpaces,omitempty" validate:"omitempty,gte=0"`
	Stories          *int     `json:"stories,omitempty" validate:"omitempty,gte=0"`
	KitchenType      string   `json:"kitchenType,omitempty"`
	Flooring         string   `json:"flooring,omitempty"`
	AirConditioning  string   `json:"airConditioning,omitempty"`
	SecurityFeatures []string `json:"securityFeatures,omitempty"`
	OutdoorSpace     string   `json:"outdoorSpace,omitempty"`
	SwimmingPool     bool     `json:"swimmingPool,omitempty"`
	BalconyTerrace   string   `json:"balconyTerrace,omitempty"`
	PropertyTax      string   `json:"propertyTax,omitempty"`
	HOAFees          string   `json:"hoaFees,omitempty"`
}

func (HouseDetails) Category() Category { return CategoryHouses }
func (d HouseDetails) Validate() error  { return ValidateStruct(d) }

// LandDetails holds attributes specific to land
type LandDetails struct {
	TotalAreaSqm           *float64 `json:"totalAreaSqm,omitempty" validate:"omitempty,gte=0"`
	TotalAreaHectares      *float64 `json:"totalAreaHectares,omitempty" validate:"omitempty,gte=0"`
	LandClassification     string   `json:"landClassification,omitempty"`
	Topography             string   `json:"topography,omitempty"`
	RoadAccess             string   `json:"roadAccess,omitempty"`
	UtilitiesWater         string   `json:"utilitiesWater,omitempty"`
	UtilitiesElectricity   string   `json:"utilitiesElectricity,omitempty"`
	UtilitiesInternet      string   `json:"utilitiesInternet,omitempty"`
	Zoning                 string   `json:"zoning,omitempty"`
	SoilType               string   `json:"soilType,omitempty"`
	FloodHistory           string   `json:"floodHistory,omitempty"`
	DevelopmentPotential   string   `json:"developmentPotential,omitempty"`
	Restrictions           string   `json:"restrictions,omitempty"`
	NearbyAmenities        string   `json:"nearbyAmenities,omitempty"`
	EnvironmentalClearance string   `json:"environmentalClearance,omitempty"`
}

func (LandDetails) Category() Category { return CategoryLand }
func (d LandDetails) Validate() error  { return ValidateStruct(d) }

// CondoDetails holds attributes specific to condominium units
type CondoDetails struct {
	FloorLevel        string   `json:"floorLevel,omitempty"`
	BuildingName      string   `json:"buildingName,omitempty"`
	ParkingSlots      *int     `json:"parkingSlots,omitempty" validate:"omitempty,gte=0"`
	AssociationDues   string   `json:"associationDues,omitempty"`
	MaintenanceFees   string   `json:"maintenanceFees,omitempty"`
	BuildingAmenities []string `json:"buildingAmenities,omitempty"`
	Security          string   `json:"security,omitempty"`
	Elevators         string   `json:"elevators,omitempty"`
	ViewType          string   `json:"viewType,omitempty"`
	Balcony           string   `json:"balcony,omitempty"`
	FurnishedStatus   string   `json:"furnishedStatus,omitempty"`
	PetPolicy         string   `json:"petPolicy,omitempty"`
	BuildingAge       string   `json:"buildingAge,omitempty"`
}

func (CondoDetails) Category() Category { return CategoryCondos }
func (d CondoDetails) Validate() error  { return ValidateStruct(d) }

// BeachDetails holds attributes specific to beachfront properties
type BeachDetails struct {
	BeachfrontMeters     *float64 `json:"beachfrontMeters,omitempty" validate:"omitempty,gte=0"`
	LandSizeSqm          *float64 `json:"landSizeSqm,omitempty" validate:"omitempty,gte=0"`
	BeachType            string   `json:"beachType,omitempty"`
	WaterDepth           string   `json:"waterDepth,omitempty"`
	TidalInfo            string   `json:"tidalInfo,omitempty"`
	AccessRoad           string   `json:"accessRoad,omitempty"`
	UtilitiesWater       string   `json:"utilitiesWater,omitempty"`
	UtilitiesElectricity string   `json:"utilitiesElectricity,omitempty"`
	ExistingStructures   string   `json:"existingStructures,omitempty"`
	EnvironmentalPermits string   `json:"environmentalPermits,omitempty"`
	BeachActivities      []string `json:"beachActivities,omitempty"`
	NearbyAttractions    string   `json:"nearbyAttractions,omitempty"`
	DivingSpots          string   `json:"divingSpots,omitempty"`
	FishingRights        string   `json:"fishingRights,omitempty"`
}

func (BeachDetails) Category() Category { return CategoryBeach }
func (d BeachDetails) Validate() error  { return ValidateStruct(d) }

// CommercialDetails holds attributes specific to commercial buildings
type CommercialDetails struct {
	BuildingSizeSqm    *float64 `json:"buildingSizeSqm,omitempty" validate:"omitempty,gte=0"`
	LotSizeSqm         *float64 `json:"lotSizeSqm,omitempty" validate:"omitempty,gte=0"`
	CommercialType     string   `json:"commercialType,omitempty"`
	Zoning             string   `json:"zoning,omitempty"`
	ParkingSpaces      *int     `json:"parkingSpaces,omitempty" validate:"omitempty,gte=0"`
	LoadingDock        string   `json:"loadingDock,omitempty"`
	CurrentIncome      string   `json:"currentIncome,omitempty"`
	RentalRate         string   `json:"rentalRate,omitempty"`
	FootTraffic        string   `json:"footTraffic,omitempty"`
	Visibility         string   `json:"visibility,omitempty"`
	CurrentTenants     []string `json:"currentTenants,omitempty"`
	LeaseTerms         string   `json:"leaseTerms,omitempty"`
	RenovationNeeded   string   `json:"renovationNeeded,omitempty"`
	ExpansionPotential string   `json:"expansionPotential,omitempty"`
	BuildingAge        string   `json:"buildingAge,omitempty"`
}

func (CommercialDetails) Category() Category { return CategoryCommercial }
func (d CommercialDetails) Validate() error  { return ValidateStruct(d) }

// AgricultureDetails holds attributes specific to farm land
type AgricultureDetails struct {
	LandSizeHectares     *float64 `json:"landSizeHectares,omitempty" validate:"omitempty,gte=0"`
	SoilType             string   `json:"soilType,omitempty"`
	CurrentCrops         string   `json:"currentCrops,omitempty"`
	IrrigationSystem     string   `json:"irrigationSystem,omitempty"`
	EquipmentIncluded    []string `json:"equipmentIncluded,omitempty"`
	RoadAccess           string   `json:"roadAccess,omitempty"`
	StorageFacilities    string   `json:"storageFacilities,omitempty"`
	HarvestHistory       string   `json:"harvestHistory,omitempty"`
	OrganicCertification string   `json:"organicCertification,omitempty"`
	WorkerHousing        string   `json:"workerHousing,omitempty"`
	MarketAccess         string   `json:"marketAccess,omitempty"`
	ClimateConditions    string   `json:"climateConditions,omitempty"`
	WaterSource          string   `json:"waterSource,omitempty"`
}

func (AgricultureDetails) Category() Category { return CategoryAgriculture }
func (d AgricultureDetails) Validate() error  { return ValidateStruct(d) }

// DecodeCategoryData decodes raw into the variant for category. Empty input
// and JSON null decode to nil. Unknown attributes are rejected.
func DecodeCategoryData(category Category, raw json.RawMessage) (CategoryDetails, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	var (
		details CategoryDetails
		err     error
	)
	switch category {
	case CategoryHouses:
		details, err = decodeStrict[HouseDetails](raw)
	case CategoryLand:
		details, err = decodeStrict[LandDetails](raw)
	case CategoryCondos:
		details, err = decodeStrict[CondoDetails](raw)
	case CategoryBeach:
		details, err = decodeStrict[BeachDetails](raw)
	case CategoryCommercial:
		details, err = decodeStrict[CommercialDetails](raw)
	case CategoryAgriculture:
		details, err = decodeStrict[AgricultureDetails](raw)
	default:
		return nil, invalid("categoryData", "unknown category %q", category)
	}
	if err != nil {
		return nil, invalid("categoryData", "%v", err)
	}
	return details, nil
}

func decodeStrict[T CategoryDetails](raw []byte) (CategoryDetails, error) {
	var v T
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("invalid attributes: %w", err)
	}
	return v, nil
}
