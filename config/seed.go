package config

import (
	"oh-crepe-api/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DemoPassword is the password of every seeded account.
const DemoPassword = "password"

var demoUsers = []models.User{
	{Email: "customer@ofos.com", Name: "John Customer", Role: models.RoleCustomer, Phone: "+63-912-345-6789", Address: "123 Main St, Quezon City"},
	{Email: "staff@ofos.com", Name: "Jane Staff", Role: models.RoleStaff, Phone: "+63-912-345-6790", Address: "456 Staff Ave, Manila"},
	{Email: "admin@ofos.com", Name: "Admin User", Role: models.RoleAdmin, Phone: "+63-912-345-6791", Address: "789 Admin Blvd, Makati"},
}

type demoItem struct {
	name, description, price, image string
	prep                            int
}

var demoMenu = []demoItem{
	{"Classic Butter & Sugar Crêpe", "A timeless French classic, delicately thin and perfectly golden, brushed with melted butter and sprinkled with fine granulated sugar.", "110.00", "/assets/images/Classic_Butter_%26_Sugar_Cr%C3%AApe.png", 10},
	{"Nutella Dream Crêpe", "A decadent crêpe generously spread with rich, creamy Nutella hazelnut spread.", "165.00", "/assets/images/Nutella_Dream_Cr%C3%AApe.png", 12},
	{"Strawberry Fields Crêpe", "Freshly sliced ripe strawberries nestled in a delicate crêpe, drizzled with a sweet strawberry glaze.", "175.00", "/assets/images/Strawberry_Fields_Cr%C3%AApe.png", 15},
	{"Lemon Zest & Sugar Crêpe", "Our signature crêpe with a generous squeeze of fresh lemon juice and a sprinkle of sugar.", "140.00", "/assets/images/Lemon_Zest_%26_Sugar_Cr%C3%AApe.png", 15},
	{"Bananas & Caramel Crêpe", "Sliced ripe bananas folded into a warm crêpe, drizzled with rich, buttery caramel sauce.", "160.00", "/assets/images/Bananas_%26_Caramel_Cr%C3%AApe.png", 10},
	{"Cinnamon Apple Crêpe", "Warm, tender spiced apples with a hint of cinnamon, folded into a soft crêpe.", "170.00", "/assets/images/Cinnamon_Apple_Cr%C3%AApe.png", 18},
	{"S'mores Delight Crêpe", "Melted chocolate, toasted marshmallows, and crushed graham crackers enveloped in a warm crêpe.", "185.00", "/assets/images/S%27mores_Delight_Cr%C3%AApe.png", 18},
	{"Berry Blast Crêpe", "A medley of fresh seasonal berries tucked into a delicate crêpe with a light berry compote.", "180.00", "/assets/images/Berry_Blast_Cr%C3%AApe.png", 18},
	{"Coconut Paradise Crêpe", "Creamy coconut custard and shredded toasted coconut with a touch of white chocolate drizzle.", "170.00", "/assets/images/Coconut_Paradise_Cr%C3%AApe.png", 18},
}

// SeedDemoData inserts the demo accounts and menu once. A database that
// already has users is left alone.
func SeedDemoData(db *gorm.DB, log *zap.Logger) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Debug("database already seeded")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		users := make([]models.User, len(demoUsers))
		copy(users, demoUsers)
		for i := range users {
			users[i].PasswordHash = string(hash)
		}
		if err := tx.Create(&users).Error; err != nil {
			return err
		}

		items := make([]models.MenuItem, 0, len(demoMenu))
		for _, d := range demoMenu {
			items = append(items, models.MenuItem{
				Name:            d.name,
				Description:     d.description,
				Price:           decimal.RequireFromString(d.price),
				Category:        "Sweet Crepes",
				ImageURL:        d.image,
				Available:       true,
				PreparationTime: d.prep,
			})
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}

		log.Info("database seeded with demo data",
			zap.Int("users", len(users)),
			zap.Int("menu_items", len(items)))
		return nil
	})
}
