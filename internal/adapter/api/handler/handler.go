package handler

import (
	"zedorolo/internal/usecase"
)

var (
	authHandler         *AuthHandler
	userHandler         *UserHandler
	kycHandler          *KYCHandler
	vehicleHandler      *VehicleHandler
	categoryHandler     *CategoryHandler
	proposalHandler     *ProposalHandler
	chatHandler         *ChatHandler
	notificationHandler *NotificationHandler
	assistantHandler    *AssistantHandler
	adminHandler        *AdminHandler
)

func Setup(
	authUseCase *usecase.AuthUseCase,
	userUseCase *usecase.UserUseCase,
	kycUseCase *usecase.KYCUseCase,
	vehicleUseCase *usecase.VehicleUseCase,
	categoryUseCase *usecase.CategoryUseCase,
	proposalUseCase *usecase.ProposalUseCase,
	chatUseCase *usecase.ChatUseCase,
	notificationUseCase *usecase.NotificationUseCase,
	assistantUseCase *usecase.AssistantUseCase,
) {
	authHandler = NewAuthHandler(authUseCase)
	userHandler = NewUserHandler(userUseCase)
	kycHandler = NewKYCHandler(kycUseCase)
	vehicleHandler = NewVehicleHandler(vehicleUseCase, categoryUseCase)
	categoryHandler = NewCategoryHandler(categoryUseCase)
	proposalHandler = NewProposalHandler(proposalUseCase)
	chatHandler = NewChatHandler(chatUseCase)
	notificationHandler = NewNotificationHandler(notificationUseCase)
	assistantHandler = NewAssistantHandler(assistantUseCase)
	adminHandler = NewAdminHandler(kycUseCase, vehicleUseCase, categoryUseCase, userUseCase)
}

func GetAuthHandler() *AuthHandler {
	return authHandler
}

func GetUserHandler() *UserHandler {
	return userHandler
}

func GetKYCHandler() *KYCHandler {
	return kycHandler
}

func GetVehicleHandler() *VehicleHandler {
	return vehicleHandler
}

func GetCategoryHandler() *CategoryHandler {
	return categoryHandler
}

func GetProposalHandler() *ProposalHandler {
	return proposalHandler
}

func GetChatHandler() *ChatHandler {
	return chatHandler
}

func GetNotificationHandler() *NotificationHandler {
	return notificationHandler
}

func GetAssistantHandler() *AssistantHandler {
	return assistantHandler
}

func GetAdminHandler() *AdminHandler {
	return adminHandler
}
