package main

// @title           Edcora Finance API
// @version         1.0
// @description     API do assistente de finanças pessoais por WhatsApp

// @contact.name   API Support
// @contact.email  soporte@edcora.com

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Cabeçalho de autenticação JWT usando o esquema Bearer. Exemplo: "Bearer {token}"
