package models

import "time"

// BaseModel contém os campos comuns a todos os registros persistidos.
type BaseModel struct {
	ID              uint      `gorm:"primaryKey;autoIncrement" form:"-"`
	DataCriacao     time.Time `gorm:"column:data_criacao;autoCreateTime" form:"-"`
	DataAtualizacao time.Time `gorm:"column:data_atualizacao;autoUpdateTime" form:"-"`
}
