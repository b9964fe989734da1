package templates

import (
	"log"

	"gorm.io/gorm"

	"fdp_backend/internals/features/certificates/model"
	certService "fdp_backend/internals/features/certificates/service"
)

const defaultTemplateName = "Standard FDP Certificate"

// SeedDefaultTemplate stores the built-in layout as the default template
// unless some template is already marked default.
func SeedDefaultTemplate(db *gorm.DB) error {
	var n int64
	if err := db.Model(&model.CertificateTemplateModel{}).
		Where("template_is_default = ?", true).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		log.Println("ℹ️ Default certificate template already set, skipping")
		return nil
	}

	t := model.CertificateTemplateModel{
		TemplateName:      defaultTemplateName,
		TemplateHTML:      certService.DefaultTemplateHTML,
		TemplateIsDefault: true,
	}
	if err := db.Create(&t).Error; err != nil {
		return err
	}
	log.Printf("✅ Inserted certificate template '%s'", t.TemplateName)
	return nil
}
